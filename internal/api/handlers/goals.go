package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wealthwise/wealthwise-backend/internal/api/httpx"
	"github.com/wealthwise/wealthwise-backend/internal/middleware"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/services"
)

type GoalHandler struct {
	goals *services.GoalService
}

func NewGoalHandler(goals *services.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

type goalReq struct {
	Name       string  `json:"name"`
	Target     string  `json:"target"`
	Saved      string  `json:"saved"`
	TargetDate *string `json:"target_date"` // YYYY-MM-DD
}

func (req *goalReq) toModel(userID string) (models.Goal, error) {
	target, err := parseAmount(req.Target)
	if err != nil {
		return models.Goal{}, errors.New("target: not a number")
	}
	saved, err := parseAmount(req.Saved)
	if err != nil {
		return models.Goal{}, errors.New("saved: not a number")
	}
	g := models.Goal{UserID: userID, Name: req.Name, Target: target, Saved: saved}
	if req.TargetDate != nil && *req.TargetDate != "" {
		d, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			return models.Goal{}, errors.New("target_date: expected YYYY-MM-DD")
		}
		g.TargetDate = &d
	}
	return g, nil
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	gs, err := h.goals.List(r.Context(), uid)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "list_failed", err.Error(), nil)
		return
	}
	if gs == nil {
		gs = []models.Goal{}
	}
	httpx.WriteJSON(w, http.StatusOK, gs)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req goalReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	g, err := req.toModel(uid)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	created, err := h.goals.Create(r.Context(), g)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "create_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req goalReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	g, err := req.toModel(uid)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	g.ID = chi.URLParam(r, "id")
	updated, err := h.goals.Update(r.Context(), g)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "goal not found", nil)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "update_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.goals.Delete(r.Context(), id, uid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "goal not found", nil)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "delete_failed", err.Error(), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
