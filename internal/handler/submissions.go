package handler

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/pulseboard-dev/pulseboard/backend/internal/catalog"
	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/pulseboard-dev/pulseboard/backend/internal/utils"
)

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "products", catalog.All())
}

// GetSubmissions lists a period's submissions, optionally narrowed to one
// product.
func (h *Handler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	req := struct {
		ProductID   string `validate:"omitempty"`
		PeriodType  string `validate:"required,oneof=weekly monthly"`
		PeriodStart string `validate:"required,datetime=2006-01-02"`
	}{
		ProductID:   r.URL.Query().Get("productId"),
		PeriodType:  r.URL.Query().Get("periodType"),
		PeriodStart: r.URL.Query().Get("periodStart"),
	}

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var submissions []*domain.Submission
	var err error
	if req.ProductID != "" {
		submissions, err = h.repository.GetSubmissionsByProduct(req.ProductID, domain.PeriodType(req.PeriodType), req.PeriodStart)
	} else {
		submissions, err = h.repository.GetSubmissionsByPeriod(domain.PeriodType(req.PeriodType), req.PeriodStart)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "submissions", submissions)
}

// CreateSubmission upserts a KPI value. The writer's email comes from the
// session, never from the request body; operators may only write to products
// they are assigned to.
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID   string `json:"productId" validate:"required"`
		FieldName   string `json:"fieldName" validate:"required"`
		Value       string `json:"value" validate:"required"`
		PeriodType  string `json:"periodType" validate:"required,oneof=weekly monthly"`
		PeriodStart string `json:"periodStart" validate:"required,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	periodType := domain.PeriodType(req.PeriodType)
	if err := utils.ValidatePeriodStart(periodType, req.PeriodStart); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, ok := catalog.Get(req.ProductID); !ok {
		h.badRequest(w, r, fmt.Errorf("unknown product %q", req.ProductID))
		return
	}

	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	if user.Role != domain.RoleAdmin && !slices.Contains(user.Products, req.ProductID) {
		h.forbidden(w, r, "product is not assigned to you")
		return
	}

	submission := &domain.Submission{
		ProductID:   req.ProductID,
		FieldName:   req.FieldName,
		Value:       req.Value,
		UserEmail:   user.Email,
		PeriodType:  periodType,
		PeriodStart: req.PeriodStart,
	}

	if err := h.repository.UpsertSubmission(submission); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "submission saved", submission)
}
