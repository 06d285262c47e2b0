package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/api/httpx"
	"github.com/wealthwise/wealthwise-backend/internal/middleware"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	p, err := h.profiles.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "no profile yet", nil)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req struct {
		HouseholdSize int    `json:"household_size"`
		MonthlyIncome string `json:"monthly_income"`
		MonthlyDebt   string `json:"monthly_debt"`
		SavingsTarget string `json:"savings_target"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	income, err := parseAmount(req.MonthlyIncome)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "monthly_income: not a number", nil)
		return
	}
	debt, err := parseAmount(req.MonthlyDebt)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "monthly_debt: not a number", nil)
		return
	}
	target, err := parseAmount(req.SavingsTarget)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "savings_target: not a number", nil)
		return
	}

	saved, err := h.profiles.Save(r.Context(), models.Profile{
		UserID:        uid,
		HouseholdSize: req.HouseholdSize,
		MonthlyIncome: income,
		MonthlyDebt:   debt,
		SavingsTarget: target,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "save_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, saved)
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
