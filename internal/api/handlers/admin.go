package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wealthwise/wealthwise-backend/internal/api/httpx"
	"github.com/wealthwise/wealthwise-backend/internal/middleware"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/services"
)

type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := 100, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	users, err := h.admin.ListUsers(r.Context(), limit, offset)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "list_failed", err.Error(), nil)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if id == adminID {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "cannot delete yourself", nil)
		return
	}
	if err := h.admin.DeleteUser(r.Context(), id, adminID); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "delete_failed", err.Error(), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.admin.ListCategories(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "list_failed", err.Error(), nil)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	httpx.WriteJSON(w, http.StatusOK, cats)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())

	var req struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	created, err := h.admin.CreateCategory(r.Context(), models.Category{
		Name: req.Name,
		Kind: models.TransactionKind(req.Kind),
	}, adminID)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "create_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.admin.DeleteCategory(r.Context(), id, adminID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "category not found", nil)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "delete_failed", err.Error(), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
