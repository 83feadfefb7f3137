package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shopstack/auth-platform/internal/auth"
	"github.com/shopstack/auth-platform/internal/config"
	"github.com/shopstack/auth-platform/internal/domain"
	"github.com/shopstack/auth-platform/internal/events"
	"github.com/shopstack/auth-platform/internal/ratelimit"
	"github.com/shopstack/auth-platform/internal/repository"
	apperrors "github.com/shopstack/auth-platform/pkg/util"
)

// ValidationResult exposes the recovered principal identity plus
// denormalized profile attributes.
type ValidationResult struct {
	UserID int64
	Email  string
	Name   string
}

// AuthService sequences hasher, token manager, limiter and refresh-token
// store into the login, validate, refresh and logout flows.
type AuthService struct {
	users         repository.UserRepository
	refreshTokens repository.RefreshTokenRepository
	tokens        *auth.TokenManager
	limiter       ratelimit.Limiter
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	rotation      bool
	refreshTTL    time.Duration
	storeTimeout  time.Duration
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	TokenManager     *auth.TokenManager
	Limiter          ratelimit.Limiter
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:         deps.UserRepo,
		refreshTokens: deps.RefreshTokenRepo,
		tokens:        deps.TokenManager,
		limiter:       limiter,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		rotation:      cfg.RefreshRotation,
		refreshTTL:    cfg.RefreshTokenTTL(),
		storeTimeout:  cfg.StoreTimeout(),
	}
}

// Login verifies credentials and mints an access/refresh token pair. The
// refresh token is persisted best-effort: a store failure is logged and the
// pair still returned, since the access token verifies without the store.
func (s *AuthService) Login(ctx context.Context, email, password, source string) (*domain.User, *domain.TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, apperrors.NewMissingCredentials()
	}

	if allowed, err := s.limiter.Allow(ctx, source); err != nil {
		// limiter outage must not lock everyone out
		s.logger.Warn("rate limiter unavailable", zap.Error(err))
	} else if !allowed {
		s.logger.Info("login throttled", zap.String("source", source))
		return nil, nil, apperrors.NewRateLimited()
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.GetByEmail(storeCtx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewPrincipalNotFound()
		}
		return nil, nil, apperrors.NewStoreUnavailable(err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	accessToken, accessExp, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	refreshToken, refreshExp, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}

	s.persistRefreshToken(ctx, user.ID, refreshToken, refreshExp)
	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{Email: user.Email})

	return user, &domain.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Validate checks a presented access token and recovers the principal.
// Expired and forged tokens both surface as invalid; the distinction is kept
// internally for logs only.
func (s *AuthService) Validate(ctx context.Context, token string) (*ValidationResult, error) {
	if token == "" {
		return nil, apperrors.NewNoToken()
	}

	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		kind := "invalid"
		if errors.Is(err, auth.ErrTokenExpired) {
			kind = "expired"
		}
		s.logger.Debug("access token rejected", zap.String("kind", kind))
		return nil, apperrors.NewInvalidToken()
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.users.GetByID(storeCtx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewPrincipalNotFound()
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	return &ValidationResult{UserID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
// With rotation enabled the old token is invalidated atomically alongside
// persisting its replacement, so a stale token cannot be honored twice.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, bool, error) {
	if refreshToken == "" {
		return nil, false, apperrors.NewNoToken()
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, false, apperrors.NewRefreshExpired()
		}
		return nil, false, apperrors.NewInvalidToken()
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	stored, err := s.refreshTokens.GetByToken(storeCtx, refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, apperrors.NewRefreshRevoked()
		}
		return nil, false, apperrors.NewStoreUnavailable(err)
	}
	if stored.Expired(time.Now()) {
		return nil, false, apperrors.NewRefreshExpired()
	}

	accessToken, accessExp, err := s.tokens.IssueAccessToken(claims.UserID)
	if err != nil {
		return nil, false, apperrors.NewInternalError(err)
	}

	pair := &domain.TokenPair{AccessToken: accessToken, AccessExpiresAt: accessExp}
	rotated := false

	if s.rotation {
		nextToken, nextExp, err := s.tokens.IssueRefreshToken(claims.UserID)
		if err != nil {
			return nil, false, apperrors.NewInternalError(err)
		}
		next := &domain.RefreshToken{UserID: claims.UserID, Token: nextToken, ExpiryDate: nextExp}
		if err := s.refreshTokens.Rotate(storeCtx, refreshToken, next); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// a concurrent refresh already consumed the old token
				return nil, false, apperrors.NewRefreshRevoked()
			}
			return nil, false, apperrors.NewStoreUnavailable(err)
		}
		pair.RefreshToken = nextToken
		pair.RefreshExpiresAt = nextExp
		rotated = true
	}

	s.publish(ctx, events.EventTokenRefreshed, claims.UserID, events.TokenRefreshedPayload{Rotated: rotated})
	return pair, rotated, nil
}

// Logout revokes the stored refresh token. Revoking an unknown token is a
// no-op so the operation stays idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.NewNoToken()
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.refreshTokens.Revoke(storeCtx, refreshToken); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) persistRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) {
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	record := &domain.RefreshToken{UserID: userID, Token: token, ExpiryDate: expiresAt}
	if err := s.refreshTokens.Create(storeCtx, record); err != nil {
		s.logger.Warn("failed to persist refresh token", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
