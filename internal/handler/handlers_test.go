package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pulseboard-dev/pulseboard/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the deny paths that must fire before the repository
// is ever consulted; the handler is built with a nil repository on purpose.

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestDeleteUserRejectsSelfDeletion(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/7", nil)

	ctx := req.Context()
	ctx = context.WithValue(ctx, UserInfoCtx, &domain.User{ID: 7, Role: domain.RoleAdmin})
	ctx = context.WithValue(ctx, SubCtxKey, "7")
	req = req.WithContext(ctx)

	h.DeleteUser(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	resp := decodeResponse(t, rr)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "your own account")
}

func TestCreateSubmissionReportsFirstInvalidField(t *testing.T) {
	h := newTestHandler(t)

	body := `{"productId": "sams", "value": "100", "periodType": "weekly", "periodStart": "2025-01-06"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), CurrentUserCtx, &domain.User{
		Email: "a@x.com", Role: domain.RoleOperator, Products: []string{"sams"},
	}))

	h.CreateSubmission(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Contains(t, resp.Message, "FieldName")
}

func TestCreateSubmissionRejectsMisalignedWeeklyPeriod(t *testing.T) {
	h := newTestHandler(t)

	// 2025-01-07 is a Tuesday
	body := `{"productId": "sams", "fieldName": "kr1_tof_actual", "value": "100", "periodType": "weekly", "periodStart": "2025-01-07"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), CurrentUserCtx, &domain.User{
		Email: "a@x.com", Role: domain.RoleOperator, Products: []string{"sams"},
	}))

	h.CreateSubmission(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateSubmissionRejectsUnknownProduct(t *testing.T) {
	h := newTestHandler(t)

	body := `{"productId": "ghostware", "fieldName": "kr1_tof_actual", "value": "100", "periodType": "weekly", "periodStart": "2025-01-06"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), CurrentUserCtx, &domain.User{
		Email: "a@x.com", Role: domain.RoleAdmin,
	}))

	h.CreateSubmission(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeResponse(t, rr)
	assert.Contains(t, resp.Message, "ghostware")
}

func TestCreateSubmissionForbidsUnassignedProduct(t *testing.T) {
	h := newTestHandler(t)

	body := `{"productId": "stigviewer", "fieldName": "kr2_active_users", "value": "42", "periodType": "weekly", "periodStart": "2025-01-06"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), CurrentUserCtx, &domain.User{
		Email: "a@x.com", Role: domain.RoleOperator, Products: []string{"sams"},
	}))

	h.CreateSubmission(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGenerateDeckValidatesPeriodBeforeQueueing(t *testing.T) {
	h := newTestHandler(t)

	body := `{"periodType": "weekly", "periodStart": "2025-01-08"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate-deck", strings.NewReader(body))

	h.GenerateDeck(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListLimit(t *testing.T) {
	limit, err := listLimit("", adminGenerationsLimit)
	require.NoError(t, err)
	assert.Equal(t, 20, limit, "the admin listing defaults to 20")

	limit, err = listLimit("5", adminGenerationsLimit)
	require.NoError(t, err)
	assert.Equal(t, 5, limit)

	_, err = listLimit("-3", adminGenerationsLimit)
	assert.Error(t, err)
	_, err = listLimit("abc", adminGenerationsLimit)
	assert.Error(t, err)
}

func TestGetGenerationsRejectsBadLimit(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/generations?limit=-3", nil)

	h.GetGenerations(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
