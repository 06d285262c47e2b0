package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise-backend/internal/api/httpx"
	"github.com/wealthwise/wealthwise-backend/internal/api/validate"
	"github.com/wealthwise/wealthwise-backend/internal/middleware"
	"github.com/wealthwise/wealthwise-backend/internal/models"
	repo "github.com/wealthwise/wealthwise-backend/internal/repository"
	"github.com/wealthwise/wealthwise-backend/internal/services"
)

type TransactionHandler struct {
	txns *services.TransactionService
}

func NewTransactionHandler(txns *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{txns: txns}
}

type transactionReq struct {
	Kind          string  `json:"kind"`
	Amount        string  `json:"amount"`
	Category      string  `json:"category"`
	Subcategory   *string `json:"subcategory"`
	Date          string  `json:"date"` // YYYY-MM-DD
	PaymentMethod string  `json:"payment_method"`
	Description   *string `json:"description"`
	IsRecurring   bool    `json:"is_recurring"`
	Frequency     *string `json:"recurring_frequency"`
}

func (req *transactionReq) toModel(userID string) (models.Transaction, error) {
	var errs validate.Errs
	for _, ef := range []*validate.ErrField{
		validate.Required("kind", req.Kind),
		validate.OneOf("kind", req.Kind, string(models.KindExpense), string(models.KindIncome)),
		validate.Required("amount", req.Amount),
		validate.Required("category", req.Category),
		validate.Required("date", req.Date),
		validate.Required("payment_method", req.PaymentMethod),
	} {
		if ef != nil {
			errs = append(errs, *ef)
		}
	}
	if len(errs) > 0 {
		return models.Transaction{}, errs
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return models.Transaction{}, validate.Errs{{Field: "amount", Msg: "not a number"}}
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return models.Transaction{}, validate.Errs{{Field: "date", Msg: "expected YYYY-MM-DD"}}
	}

	t := models.Transaction{
		UserID:        userID,
		Kind:          models.TransactionKind(req.Kind),
		Amount:        amount,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Date:          date,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
		IsRecurring:   req.IsRecurring,
	}
	if req.Frequency != nil {
		f := models.RecurringFrequency(*req.Frequency)
		t.Frequency = &f
	}
	return t, nil
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req transactionReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	t, err := req.toModel(uid)
	if err != nil {
		writeValidation(w, err)
		return
	}
	created, err := h.txns.Create(r.Context(), t)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "create_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	var req transactionReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	t, err := req.toModel(uid)
	if err != nil {
		writeValidation(w, err)
		return
	}
	t.ID = id
	updated, err := h.txns.Update(r.Context(), t)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "transaction not found", nil)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "update_failed", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.txns.Delete(r.Context(), id, uid); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "transaction not found", nil)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "delete_failed", err.Error(), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	t, err := h.txns.Get(r.Context(), id, uid)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "transaction not found", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var kind *models.TransactionKind
	if v := r.URL.Query().Get("kind"); v != "" {
		k := models.TransactionKind(v)
		if k != models.KindExpense && k != models.KindIncome {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", "kind must be expense or income", nil)
			return
		}
		kind = &k
	}
	limit, offset := 50, 0
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

	txs, err := h.txns.List(r.Context(), uid, kind, limit, offset)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "list_failed", err.Error(), nil)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	httpx.WriteJSON(w, http.StatusOK, txs)
}

func writeValidation(w http.ResponseWriter, err error) {
	var errs validate.Errs
	if errors.As(err, &errs) {
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "validation failed", errs)
		return
	}
	httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
}
