package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"singularity/internal/delivery/http/validator"
	"singularity/internal/domain/entity"
	domainerrors "singularity/internal/domain/errors"
	"singularity/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAccountUsecase returns canned outputs for handler tests.
type stubAccountUsecase struct {
	registerOutput *usecase.TokenPairOutput
	registerErr    error
	loginOutput    *usecase.TokenPairOutput
	loginErr       error
	refreshOutput  *usecase.RefreshOutput
	refreshErr     error
}

func (s *stubAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.TokenPairOutput, error) {
	return s.registerOutput, s.registerErr
}

func (s *stubAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	return s.loginOutput, s.loginErr
}

func (s *stubAccountUsecase) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	return s.refreshOutput, s.refreshErr
}

func (s *stubAccountUsecase) Authenticate(ctx context.Context, bearerToken string) (*entity.Account, error) {
	return nil, domainerrors.ErrUnauthorized
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newTestAccountHandler(uc usecase.AccountUsecase) *AccountHandler {
	return NewAccountHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAccountHandler_Register(t *testing.T) {
	account := &entity.Account{
		ID:       uuid.New(),
		Email:    "hero@example.com",
		Username: "hero",
		Class:    entity.ClassWarrior,
		Level:    1,
		Attributes: map[string]int{
			entity.AttrStrength: 4,
		},
		Energy:       100,
		MaxEnergy:    100,
		PasswordHash: "this-must-never-leak",
	}
	uc := &stubAccountUsecase{
		registerOutput: &usecase.TokenPairOutput{
			AccessToken:  "access_token",
			RefreshToken: "refresh_token",
			Account:      account,
		},
	}

	e := newTestEcho()
	body := `{"username":"hero","email":"hero@example.com","password":"Password123!","class":"warrior"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := newTestAccountHandler(uc).Register(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
	assert.Contains(t, rec.Body.String(), "refresh_token")
	// The password hash must never appear in a response.
	assert.NotContains(t, rec.Body.String(), "this-must-never-leak")
}

func TestAccountHandler_Register_RejectsInvalidEmail(t *testing.T) {
	e := newTestEcho()
	body := `{"username":"hero","email":"not-an-email","password":"Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := newTestAccountHandler(&stubAccountUsecase{}).Register(c)

	// Validation failures surface as an HTTPError for the error handler.
	require.Error(t, err)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAccountHandler_Login(t *testing.T) {
	uc := &stubAccountUsecase{
		loginOutput: &usecase.TokenPairOutput{
			AccessToken:  "access_token",
			RefreshToken: "refresh_token",
			Account:      &entity.Account{ID: uuid.New(), Email: "hero@example.com", Class: entity.ClassWarrior},
		},
	}

	e := newTestEcho()
	body := `{"email":"hero@example.com","password":"Password123!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := newTestAccountHandler(uc).Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
}

func TestAccountHandler_Login_ErrorsPropagateToErrorHandler(t *testing.T) {
	uc := &stubAccountUsecase{loginErr: domainerrors.ErrInvalidCredentials}

	e := newTestEcho()
	body := `{"email":"hero@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := newTestAccountHandler(uc).Login(c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountHandler_Refresh(t *testing.T) {
	uc := &stubAccountUsecase{
		refreshOutput: &usecase.RefreshOutput{AccessToken: "new_access_token"},
	}

	e := newTestEcho()
	body := `{"refreshToken":"refresh_token"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := newTestAccountHandler(uc).Refresh(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new_access_token")
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
