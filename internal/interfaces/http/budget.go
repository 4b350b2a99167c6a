package http

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"expensemanager/internal/domain"
	"expensemanager/internal/domain/budget"
)

type BudgetHandler struct {
	budgets *budget.Service
	log     logrus.FieldLogger
}

func NewBudgetHandler(budgets *budget.Service, log logrus.FieldLogger) *BudgetHandler {
	return &BudgetHandler{budgets: budgets, log: log}
}

type UpsertBudgetRequest struct {
	Category string           `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
	Month    int              `json:"month"`
	Year     int              `json:"year"`
}

type BudgetResponse struct {
	ID       int64           `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
}

func toBudgetResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		ID:       b.ID,
		Category: b.Category,
		Amount:   b.Amount,
		Month:    b.Month,
		Year:     b.Year,
	}
}

// HandleUpsert sets the budget of a category for a period. Posting the same
// category and period again replaces the amount.
func (h *BudgetHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpsertBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Amount == nil {
		writeError(w, r, h.log, domain.Invalid("amount", "is required"))
		return
	}

	b, err := h.budgets.Upsert(r.Context(), userID, budget.UpsertParams{
		Category: req.Category,
		Amount:   *req.Amount,
		Month:    req.Month,
		Year:     req.Year,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *BudgetHandler) HandleListByMonth(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	month, year, err := pathPeriod(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	budgets, err := h.budgets.ListByMonth(r.Context(), userID, month, year)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		response = append(response, toBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *BudgetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.budgets.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
