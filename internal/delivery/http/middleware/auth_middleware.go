package middleware

import (
	"strings"

	deliverycontext "singularity/internal/delivery/context"
	"singularity/internal/delivery/http/response"
	"singularity/internal/domain/entity"
	"singularity/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes behind a valid bearer access token.
type AuthMiddleware struct {
	accountUc usecase.AccountUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(accountUc usecase.AccountUsecase) *AuthMiddleware {
	return &AuthMiddleware{accountUc: accountUc}
}

// Authenticate validates the access token and stashes the resolved account on
// the request context. Every failure mode returns the same 401 envelope.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
		}

		account, err := m.accountUc.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		c.Set(string(deliverycontext.KeyAccount), account)

		return next(c)
	}
}

// CurrentAccount returns the account set by Authenticate, or nil when the
// route was not guarded.
func CurrentAccount(c echo.Context) *entity.Account {
	account, _ := c.Get(string(deliverycontext.KeyAccount)).(*entity.Account)

	return account
}
