package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/api/httpx"
	"github.com/wealthwise/wealthwise-backend/internal/api/validate"
	"github.com/wealthwise/wealthwise-backend/internal/middleware"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	"github.com/wealthwise/wealthwise-backend/internal/services"
)

type BudgetHandler struct {
	budgets *services.BudgetService
}

func NewBudgetHandler(budgets *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgets: budgets}
}

func monthParams(r *http.Request) (year, month int, ok bool) {
	y, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || validate.IntRange("month", int64(m), 1, 12) != nil {
		return 0, 0, false
	}
	return y, m, true
}

// Get returns budget-vs-spend for the month.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	year, month, ok := monthParams(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid year/month", nil)
		return
	}

	report, err := h.budgets.Report(r.Context(), uid, year, month)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "report_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, report)
}

// Put upserts the month's budget wholesale.
func (h *BudgetHandler) Put(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	year, month, ok := monthParams(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid year/month", nil)
		return
	}

	var req struct {
		OverallMonthly string            `json:"overall_monthly"`
		Categories     map[string]string `json:"categories"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	overall, err := parseAmount(req.OverallMonthly)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "overall_monthly: not a number", nil)
		return
	}
	cats := make(map[string]decimal.Decimal, len(req.Categories))
	for name, v := range req.Categories {
		amt, err := parseAmount(v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", name+": not a number", nil)
			return
		}
		cats[name] = amt
	}

	saved, err := h.budgets.Upsert(r.Context(), models.Budget{
		UserID:         uid,
		Year:           year,
		Month:          month,
		OverallMonthly: overall,
		Categories:     cats,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "save_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, saved)
}
