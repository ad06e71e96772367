package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/domain"
	domainerrors "github.com/librasys/librasys-server/internal/errors"
	"github.com/librasys/librasys-server/internal/store"
	"github.com/librasys/librasys-server/internal/validation"
)

// AccountService manages accounts on behalf of super admins.
type AccountService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateAccountRequest contains data for an admin-created account.
type CreateAccountRequest struct {
	Username string      `json:"username" validate:"required,min=3"`
	Password string      `json:"password" validate:"required,min=3"`
	Role     domain.Role `json:"role" validate:"required,oneof=client admin superadmin"`
}

// List returns all accounts with password hashes stripped.
func (s *AccountService) List(ctx context.Context, actor Actor) ([]*domain.Account, error) {
	if err := actor.require(domain.CapabilityManageAccounts); err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0)
	for account, err := range s.store.ListAccounts(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		accounts = append(accounts, sanitizeAccount(account))
	}
	return accounts, nil
}

// Create adds an account with an arbitrary role.
func (s *AccountService) Create(ctx context.Context, actor Actor, req CreateAccountRequest) (*domain.Account, error) {
	if err := actor.require(domain.CapabilityManageAccounts); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         req.Role,
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAccountExists) {
			return nil, domainerrors.AlreadyExists("username already exists")
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Account created",
			"username", account.Username,
			"role", account.Role,
			"by", actor.Username,
		)
	}

	return sanitizeAccount(account), nil
}

// Delete removes an account along with its sessions and chat transcript.
// Actors cannot delete themselves; that would strand the server without the
// acting super admin mid-request.
func (s *AccountService) Delete(ctx context.Context, actor Actor, username string) error {
	if err := actor.require(domain.CapabilityManageAccounts); err != nil {
		return err
	}

	if username == actor.Username {
		return domainerrors.Validation("you cannot delete your own account")
	}

	if _, err := s.store.GetAccount(ctx, username); err != nil {
		return err
	}

	if err := s.store.DeleteAccount(ctx, username); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	// Best-effort cleanup; the account itself is already gone.
	if err := s.store.DeleteTranscript(ctx, username); err != nil && s.logger != nil {
		s.logger.Warn("Failed to delete transcript", "username", username, "error", err)
	}
	for session, err := range s.store.Sessions.List(ctx) {
		if err != nil {
			break
		}
		if session.Username == username {
			if err := s.store.DeleteSession(ctx, session.ID); err != nil && s.logger != nil {
				s.logger.Warn("Failed to delete session", "session_id", session.ID, "error", err)
			}
		}
	}

	if s.logger != nil {
		s.logger.Info("Account deleted", "username", username, "by", actor.Username)
	}

	return nil
}
