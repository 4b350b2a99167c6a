package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"expensemanager/internal/domain"
	"expensemanager/internal/domain/expense"
)

type ExpenseHandler struct {
	expenses *expense.Service
	log      logrus.FieldLogger
}

func NewExpenseHandler(expenses *expense.Service, log logrus.FieldLogger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, log: log}
}

// Request/Response DTOs

type CreateExpenseRequest struct {
	Datetime    time.Time        `json:"datetime"`
	Category    string           `json:"category"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount"`
	Mode        string           `json:"mode"`
}

type UpdateExpenseRequest struct {
	Datetime    *time.Time       `json:"datetime,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Mode        *string          `json:"mode,omitempty"`
}

type ExpenseResponse struct {
	ID          int64           `json:"id"`
	Datetime    time.Time       `json:"datetime"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Mode        string          `json:"mode"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
}

type CategoryTotalResponse struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func toExpenseResponse(e *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Datetime:    e.Datetime,
		Category:    e.Category,
		Title:       e.Title,
		Description: e.Description,
		Amount:      e.Amount,
		Mode:        e.Mode,
		Month:       e.Month,
		Year:        e.Year,
	}
}

func toExpenseResponses(list []*expense.Expense) []ExpenseResponse {
	response := make([]ExpenseResponse, 0, len(list))
	for _, e := range list {
		response = append(response, toExpenseResponse(e))
	}
	return response
}

// HandleCreate records a new expense for the authenticated user
func (h *ExpenseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Amount == nil {
		writeError(w, r, h.log, domain.Invalid("amount", "is required"))
		return
	}

	e, err := h.expenses.Create(r.Context(), userID, expense.CreateParams{
		Datetime:    req.Datetime,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Amount:      *req.Amount,
		Mode:        req.Mode,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(e))
}

// HandleList returns every expense of the authenticated user
func (h *ExpenseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	list, err := h.expenses.ListAll(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponses(list))
}

func (h *ExpenseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	e, err := h.expenses.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (h *ExpenseHandler) HandleListByMonth(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	month, year, err := pathPeriod(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	list, err := h.expenses.ListByMonth(r.Context(), userID, month, year)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponses(list))
}

func (h *ExpenseHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	list, err := h.expenses.ListByCategory(r.Context(), userID, mux.Vars(r)["category"])
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponses(list))
}

// HandleCategoryTotals sums all expenses per category
func (h *ExpenseHandler) HandleCategoryTotals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	totals, err := h.expenses.AggregateByCategory(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response := make([]CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		response = append(response, CategoryTotalResponse{Category: t.Category, TotalAmount: t.Total})
	}
	writeJSON(w, http.StatusOK, response)
}

// HandleUpdate applies a partial update to an expense
func (h *ExpenseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req UpdateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	e, err := h.expenses.Update(r.Context(), userID, id, expense.UpdateParams{
		Datetime:    req.Datetime,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Mode:        req.Mode,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (h *ExpenseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.expenses.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
