package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/api/httpx"
	"github.com/wealthwise/wealthwise-backend/internal/livebalance"
	"github.com/wealthwise/wealthwise-backend/internal/middleware"
	"github.com/wealthwise/wealthwise-backend/internal/payments"
	"github.com/wealthwise/wealthwise-backend/internal/restore"
	"github.com/wealthwise/wealthwise-backend/internal/services"
)

// DashboardHandler serves the derived views: live balance, insights,
// session restore, and the UPI pay link.
type DashboardHandler struct {
	balances *livebalance.Registry
	insights *services.InsightService
	restore  *restore.Service
}

func NewDashboardHandler(balances *livebalance.Registry, ins *services.InsightService, rst *restore.Service) *DashboardHandler {
	return &DashboardHandler{balances: balances, insights: ins, restore: rst}
}

// LiveBalance returns the watcher snapshot for the current month. The
// optional base query parameter is the caller-supplied base income.
func (h *DashboardHandler) LiveBalance(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	base := decimal.Zero
	if v := r.URL.Query().Get("base"); v != "" {
		b, err := decimal.NewFromString(v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", "base: not a number", nil)
			return
		}
		base = b
	}
	httpx.WriteJSON(w, http.StatusOK, h.balances.Snapshot(r.Context(), uid, base))
}

func (h *DashboardHandler) Insights(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	ins, err := h.insights.ForUser(r.Context(), uid)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "insights_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ins)
}

// Restore returns whatever loaded even on partial failure, so the
// client can paint with what it has; Success says whether everything
// came back.
func (h *DashboardHandler) Restore(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	httpx.WriteJSON(w, http.StatusOK, h.restore.Restore(r.Context(), uid))
}

// UPILink builds the deep link; payment itself happens in whatever
// app the device resolves for the upi scheme.
func (h *DashboardHandler) UPILink(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := parseAmount(q.Get("am"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "am: not a number", nil)
		return
	}
	uri, err := payments.PayURI(payments.PayRequest{
		PayeeAddress: q.Get("pa"),
		PayeeName:    q.Get("pn"),
		Amount:       amount,
		Note:         q.Get("tn"),
	})
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"uri": uri})
}
