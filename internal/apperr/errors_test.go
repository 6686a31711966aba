package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/DjordjeVuckovic/search-bench/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *apperr.ValidationError
		want string
	}{
		{"plain", apperr.NewValidation("num_clients must be at least 1"), "num_clients must be at least 1"},
		{"wrapped", apperr.NewValidationWrap("invalid catalog", fmt.Errorf("yaml: line 3")), "invalid catalog: yaml: line 3"},
		{"field", apperr.NewFieldValidation("test_duration", "must be >= 0, got %g", -1.0), "test_duration: must be >= 0, got -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	inner := errors.New("bad yaml")
	original := apperr.NewValidationWrap("invalid catalog", inner)
	wrapped := fmt.Errorf("load config: %w", fmt.Errorf("catalog: %w", original))

	var ve *apperr.ValidationError
	require.ErrorAs(t, wrapped, &ve)
	assert.Equal(t, "invalid catalog", ve.Message)
	assert.ErrorIs(t, wrapped, inner)
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	var ve *apperr.ValidationError
	assert.False(t, errors.As(fmt.Errorf("dial: %w", errors.New("refused")), &ve))
}

func TestNotFoundError(t *testing.T) {
	err := apperr.NewNotFound("results", os.ErrNotExist)
	assert.Equal(t, "results not found: file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "report not found", apperr.NewNotFound("report", nil).Error())
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", fmt.Errorf("x: %w", apperr.NewFieldValidation("backend", "unknown")), http.StatusBadRequest, `"field":"backend"`},
		{"not found", apperr.NewNotFound("results", os.ErrNotExist), http.StatusNotFound, `"error":"results not found"`},
		{"http error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, `"error":"nope"`},
		{"unhandled", errors.New("boom"), http.StatusInternalServerError, `"error":"internal server error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/results", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
