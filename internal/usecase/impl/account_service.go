// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"singularity/config"
	deliverycontext "singularity/internal/delivery/context"
	"singularity/internal/domain/entity"
	domainerrors "singularity/internal/domain/errors"
	"singularity/internal/domain/progression"
	"singularity/internal/domain/repository"
	"singularity/internal/domain/service"
	"singularity/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	throttle     service.LoginThrottle
	game         *config.GameConfig
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Throttle     service.LoginThrottle
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all
// dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		throttle:     params.Throttle,
		game:         params.Config.Game,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to
// the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.TokenPairOutput, error) {
	if err := srv.throttle.Check(input.ClientKey); err != nil {
		srv.log(ctx).Warn("Registration throttled", slog.String("clientKey", input.ClientKey))

		return nil, err
	}

	if err := srv.hasher.ValidateStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email))

		return nil, err
	}

	email := entity.NormalizeEmail(input.Email)
	if email == "" || input.Username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username and email are required")
	}

	// Defensive pre-check; the store's constraints remain the authority and
	// race-check the insert below.
	if err := srv.checkAvailability(ctx, email, input.Username); err != nil {
		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	class := entity.ParseClass(input.Class)
	now := time.Now().UTC()
	account := &entity.Account{
		Email:        email,
		Username:     input.Username,
		FullName:     input.FullName,
		Class:        class,
		PasswordHash: passwordHash,
		Level:        1,
		Experience:   0,
		Attributes:   progression.StartingAttributes(class, srv.game.ClassBonuses),
		Energy:       srv.game.StartingEnergy,
		MaxEnergy:    srv.game.MaxEnergy,
		LastLogin:    now,
		LastActivity: now,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, domainerrors.ErrEmailTaken
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, domainerrors.ErrUsernameTaken
		default:
			srv.log(ctx).Error("Failed to create account", slog.Any("error", err))

			return nil, mapStoreError(err)
		}
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens after registration", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	srv.log(ctx).Info("Account registered",
		slog.Any("accountID", account.ID),
		slog.String("class", string(account.Class)))

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, nil
}

func (srv *accountService) checkAvailability(ctx context.Context, email, username string) error {
	if _, err := srv.accountRepo.FindByEmail(ctx, email); err == nil {
		return domainerrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return mapStoreError(err)
	}

	if _, err := srv.accountRepo.FindByUsername(ctx, username); err == nil {
		return domainerrors.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return mapStoreError(err)
	}

	return nil
}

// Login orchestrates the account login process.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.TokenPairOutput, error) {
	if err := srv.throttle.Check(input.ClientKey); err != nil {
		srv.log(ctx).Warn("Login throttled", slog.String("clientKey", input.ClientKey))

		return nil, err
	}

	account, err := srv.accountRepo.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Unknown email and wrong password produce the same signal.
			return nil, domainerrors.ErrInvalidCredentials
		}
		srv.log(ctx).Error("Failed to load account during login", slog.Any("error", err))

		return nil, mapStoreError(err)
	}

	// bcrypt comparison is CPU-bound and runs outside any store round-trip.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.Any("accountID", account.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := srv.accountRepo.UpdateLastLogin(ctx, account.ID, now); err != nil {
		// The login itself succeeded; a failed timestamp write is not fatal.
		srv.log(ctx).Warn("Failed to update last login", slog.Any("accountID", account.ID), slog.Any("error", err))
	} else {
		account.LastLogin = now
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(account.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens during login", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	srv.log(ctx).Debug("Account logged in", slog.Any("accountID", account.ID))

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, nil
}

// Refresh mints exactly one new access token from a valid refresh token.
// The refresh token is not rotated and its lifetime is not extended; it
// remains usable until its own expiry.
func (srv *accountService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.Verify(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		srv.log(ctx).Warn("Refresh token rejected")

		return nil, domainerrors.ErrUnauthorized
	}

	accessToken, err := srv.tokenService.IssueAccess(claims.Subject)
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token during refresh", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError
	}

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Authenticate resolves a bearer access token to its account. Every failure
// collapses to the single unauthorized signal.
func (srv *accountService) Authenticate(ctx context.Context, bearerToken string) (*entity.Account, error) {
	claims, err := srv.tokenService.Verify(bearerToken, service.TokenKindAccess)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	account, err := srv.accountRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		srv.log(ctx).Error("Failed to resolve account from token", slog.Any("error", err))

		return nil, mapStoreError(err)
	}

	return account, nil
}

// mapStoreError translates repository failures into the store error
// taxonomy: deadline overruns are the retryable timeout class, anything else
// is unavailability. Internal detail stays in logs, not in responses.
func mapStoreError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.ErrStoreTimeout
	}

	return domainerrors.ErrStoreUnavailable
}
