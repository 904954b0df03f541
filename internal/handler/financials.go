package handler

import (
	"net/http"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/shopspring/decimal"
)

func (h *Handler) GetFinancialRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.repository.GetAllFinancialRecords()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "financial records", records)
}

// UpsertFinancialRecord writes a month's figures. Any periodStart inside the
// month addresses the same record; metrics may legitimately be zero, so only
// the dates are validated here.
func (h *Handler) UpsertFinancialRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PeriodStart      string          `json:"periodStart" validate:"required,datetime=2006-01-02"`
		PeriodEnd        string          `json:"periodEnd" validate:"required,datetime=2006-01-02"`
		Revenue          decimal.Decimal `json:"revenue"`
		RecurringRevenue decimal.Decimal `json:"recurringRevenue"`
		NewBookings      decimal.Decimal `json:"newBookings"`
		ChurnedRevenue   decimal.Decimal `json:"churnedRevenue"`
		GrossMargin      decimal.Decimal `json:"grossMargin"`
		OperatingCosts   decimal.Decimal `json:"operatingCosts"`
		CashBalance      decimal.Decimal `json:"cashBalance"`
		Headcount        decimal.Decimal `json:"headcount"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	record := &domain.FinancialRecord{
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		Revenue:          req.Revenue,
		RecurringRevenue: req.RecurringRevenue,
		NewBookings:      req.NewBookings,
		ChurnedRevenue:   req.ChurnedRevenue,
		GrossMargin:      req.GrossMargin,
		OperatingCosts:   req.OperatingCosts,
		CashBalance:      req.CashBalance,
		Headcount:        req.Headcount,
		UpdatedBy:        user.Email,
	}

	if err := h.repository.UpsertFinancialRecord(record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "financial record saved", record)
}
