package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/domain"
	domainerrors "github.com/librasys/librasys-server/internal/errors"
	"github.com/librasys/librasys-server/internal/id"
	"github.com/librasys/librasys-server/internal/store"
)

const (
	minUsernameLength = 3
	minPasswordLength = 3
)

// AuthService handles login, registration, and token lifecycle.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store *store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest contains new account data.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// AuthResponse contains tokens and the authenticated account.
type AuthResponse struct {
	Account      *domain.Account `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int64           `json:"expires_in"` // Access token lifetime in seconds
}

// Login authenticates an account and opens a session.
// Lookup and password failures return the same error so the response never
// reveals which usernames exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	account, err := s.store.GetAccount(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid credentials")
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	valid, err := auth.VerifyPassword(account.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid credentials")
	}

	// Accounts carried over from the old catalog still hold the weak
	// rolling-hash format. Rewrite them with argon2id now that we have
	// the plaintext in hand.
	if auth.IsLegacyHash(account.PasswordHash) {
		if upgraded, err := auth.HashPassword(req.Password); err == nil {
			account.PasswordHash = upgraded
			if s.logger != nil {
				s.logger.Info("Upgraded legacy password hash", "username", account.Username)
			}
		} else if s.logger != nil {
			s.logger.Warn("Failed to upgrade legacy password hash",
				"username", account.Username,
				"error", err,
			)
		}
	}

	account.LastLoginAt = time.Now()
	if err := s.store.UpdateAccount(ctx, account); err != nil {
		// Log but don't fail login
		if s.logger != nil {
			s.logger.Warn("Failed to update account on login",
				"username", account.Username,
				"error", err,
			)
		}
	}

	resp, err := s.openSession(ctx, account)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Account logged in", "username", account.Username, "role", account.Role)
	}

	return resp, nil
}

// Register creates a new client account and logs it in.
// Checks run in a fixed order and the first failure is reported alone.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if utf8.RuneCountInString(req.Username) < minUsernameLength {
		return nil, domainerrors.Validationf("username must be at least %d characters", minUsernameLength)
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, domainerrors.Validationf("password must be at least %d characters", minPasswordLength)
	}
	if req.Password != req.ConfirmPassword {
		return nil, domainerrors.Validation("passwords do not match")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         domain.RoleClient,
		LastLoginAt:  time.Now(),
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAccountExists) {
			return nil, domainerrors.AlreadyExists("username already exists")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Account registered", "username", account.Username)
	}

	// New registrations go straight to a logged-in session.
	return s.openSession(ctx, account)
}

// RefreshRequest carries the opaque refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates the refresh token and issues a fresh access token.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	tokenHash := auth.HashRefreshToken(req.RefreshToken)

	session, err := s.store.GetSessionByRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) || errors.Is(err, store.ErrSessionExpired) {
			return nil, domainerrors.Unauthorized("invalid or expired refresh token")
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	account, err := s.store.GetAccount(ctx, session.Username)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			// Account was deleted; the session is orphaned.
			_ = s.store.DeleteSession(ctx, session.ID)
			return nil, domainerrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	newRefreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	session.RefreshTokenHash = auth.HashRefreshToken(newRefreshToken)
	session.ExpiresAt = time.Now().Add(s.tokenService.RefreshTokenDuration())
	session.Touch()
	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("rotate session: %w", err)
	}

	accessToken, err := s.tokenService.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		Account:      sanitizeAccount(account),
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.tokenService.AccessTokenDuration().Seconds()),
	}, nil
}

// Logout revokes the session behind the given refresh token. Idempotent;
// unknown tokens are treated as already logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := auth.HashRefreshToken(refreshToken)

	session, err := s.store.GetSessionByRefreshToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) || errors.Is(err, store.ErrSessionExpired) {
			return nil
		}
		return fmt.Errorf("lookup session: %w", err)
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Account logged out", "username", session.Username)
	}

	return nil
}

// VerifyAccess checks an access token and resolves it to a live account.
// Deleted accounts fail verification even while their tokens are unexpired.
func (s *AuthService) VerifyAccess(ctx context.Context, tokenString string) (*domain.Account, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	account, err := s.store.GetAccount(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil, domainerrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	return account, nil
}

// openSession issues tokens for an authenticated account.
func (s *AuthService) openSession(ctx context.Context, account *domain.Account) (*AuthResponse, error) {
	accessToken, err := s.tokenService.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate("session")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		Username:         account.Username,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.tokenService.RefreshTokenDuration()),
		CreatedAt:        now,
		LastSeenAt:       now,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &AuthResponse{
		Account:      sanitizeAccount(account),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenService.AccessTokenDuration().Seconds()),
	}, nil
}

// sanitizeAccount returns a copy safe to send to clients.
func sanitizeAccount(account *domain.Account) *domain.Account {
	clean := *account
	clean.PasswordHash = ""
	return &clean
}
