package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "singularity/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestErrorMiddleware() *ErrorMiddleware {
	return NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func recordError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	newTestErrorMiddleware().HandleHTTPError(err, c)

	return rec
}

func TestErrorMiddleware_AppErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: domainerrors.ErrValidationFailed, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "email taken", err: domainerrors.ErrEmailTaken, wantStatus: http.StatusConflict, wantCode: "EMAIL_TAKEN"},
		{name: "invalid credentials", err: domainerrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: "INVALID_CREDENTIALS"},
		{name: "unauthorized", err: domainerrors.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "throttled", err: domainerrors.ErrThrottled, wantStatus: http.StatusTooManyRequests, wantCode: "THROTTLED"},
		{name: "store unavailable", err: domainerrors.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable, wantCode: "STORE_UNAVAILABLE"},
		{name: "store timeout", err: domainerrors.ErrStoreTimeout, wantStatus: http.StatusGatewayTimeout, wantCode: "STORE_TIMEOUT"},
		{name: "progress conflict", err: domainerrors.ErrProgressConflict, wantStatus: http.StatusConflict, wantCode: "PROGRESS_CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recordError(t, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestErrorMiddleware_WrappedAppErrorStillMaps(t *testing.T) {
	rec := recordError(t, errors.Wrap(domainerrors.ErrThrottled, "login"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "THROTTLED")
}

func TestErrorMiddleware_UnknownErrorIsGeneric500(t *testing.T) {
	rec := recordError(t, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	// Internal detail stays in logs, never in the response body.
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec := recordError(t, echo.NewHTTPError(http.StatusBadRequest, "malformed payload"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "HTTP_ERROR")
}
