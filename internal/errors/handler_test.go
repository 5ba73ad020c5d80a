package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestErrorHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblem(t *testing.T) {
	h := newTestErrorHandler()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "context deadline",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "api error",
			err:        ErrValidation("year", "must be an integer"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "unsupported dimension",
			err:        errors.New(`unsupported grouping dimension: "warehouse"`),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeInvalidDimension,
		},
		{
			name:       "missing file",
			err:        errors.New("failed to stat workbook: no such file or directory"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeDatasetNotFound,
		},
		{
			name:       "workbook load failure",
			err:        errors.New("failed to open workbook: zip: not a valid zip file"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeDatasetLoad,
		},
		{
			name:       "unknown error",
			err:        errors.New("something exploded"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil)
			problem := h.ErrorToProblem(tt.err, req)

			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/dashboard/kpis", problem.Instance)
		})
	}
}

func TestHandleError_WritesProblemJSON(t *testing.T) {
	h := newTestErrorHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/breakdown", nil)
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, ErrValidation("dimension", "unknown value"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeValidation, body["type"])
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])

	details := body["details"].(map[string]interface{})
	assert.Equal(t, "dimension", details["field"])
}

func TestHandleError_NilErrorWritesNothing(t *testing.T) {
	h := newTestErrorHandler()

	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Empty(t, rec.Body.String())
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestErrorHandler()

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodPost, "/api/dashboard/kpis", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestProblemDetails_MarshalFlattensExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "nope", "/x").
		WithExtension("error_code", "VALIDATION_FAILED")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
	assert.InDelta(t, http.StatusBadRequest, body["status"].(float64), 1e-9)
}

func TestAPIError(t *testing.T) {
	err := New(http.StatusNotFound, "NOT_FOUND", "gone")
	assert.Equal(t, "gone", err.Error())

	var apiErr *APIError
	wrapped := fmt.Errorf("context: %w", err)
	require.ErrorAs(t, wrapped, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.ErrorCode)
}
