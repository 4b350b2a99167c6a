package http

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"expensemanager/internal/domain/reporting"
)

// ReportHandler serves the per-period budget reports. Amounts and percentages
// are rendered as strings with two fractional digits.
type ReportHandler struct {
	reports *reporting.Service
	log     logrus.FieldLogger
}

func NewReportHandler(reports *reporting.Service, log logrus.FieldLogger) *ReportHandler {
	return &ReportHandler{reports: reports, log: log}
}

type CategorySummaryResponse struct {
	Category      string `json:"category"`
	TotalExpenses string `json:"totalExpenses"`
	TotalBudget   string `json:"totalBudget"`
}

type CategoryShareResponse struct {
	Category      string `json:"category"`
	TotalExpenses string `json:"totalExpenses"`
	Percentage    string `json:"percentage"`
}

type PercentageBreakdownResponse struct {
	TotalOverallExpense           string                  `json:"totalOverallExpense"`
	CategoryWiseExpensePercentage []CategoryShareResponse `json:"categoryWiseExpensePercentage"`
}

type OverallStatusResponse struct {
	TotalExpenses string  `json:"totalExpenses"`
	OverallBudget *string `json:"overallBudget"`
	Remaining     *string `json:"remaining"`
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func fixedPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := fixed(*d)
	return &s
}

func (h *ReportHandler) HandleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	month, year, err := pathPeriod(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	rows, err := h.reports.CategoryBreakdown(r.Context(), userID, month, year)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response := make([]CategorySummaryResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, CategorySummaryResponse{
			Category:      row.Category,
			TotalExpenses: fixed(row.TotalExpenses),
			TotalBudget:   fixed(row.TotalBudget),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *ReportHandler) HandlePercentageBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	month, year, err := pathPeriod(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	breakdown, err := h.reports.ExpensePercentageBreakdown(r.Context(), userID, month, year)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response := PercentageBreakdownResponse{
		TotalOverallExpense:           fixed(breakdown.TotalOverallExpense),
		CategoryWiseExpensePercentage: make([]CategoryShareResponse, 0, len(breakdown.Categories)),
	}
	for _, c := range breakdown.Categories {
		response.CategoryWiseExpensePercentage = append(response.CategoryWiseExpensePercentage, CategoryShareResponse{
			Category:      c.Category,
			TotalExpenses: fixed(c.TotalExpenses),
			Percentage:    fixed(c.Percentage),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *ReportHandler) HandleOverallStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	month, year, err := pathPeriod(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	status, err := h.reports.OverallStatus(r.Context(), userID, month, year)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, OverallStatusResponse{
		TotalExpenses: fixed(status.TotalExpenses),
		OverallBudget: fixedPtr(status.OverallBudget),
		Remaining:     fixedPtr(status.Remaining),
	})
}
