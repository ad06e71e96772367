package store

import (
	"context"
	"errors"
	"iter"

	"github.com/librasys/librasys-server/internal/domain"
)

// CreateAccount creates a new account keyed by username.
// Returns ErrAccountExists if the username is taken.
func (s *Store) CreateAccount(ctx context.Context, account *domain.Account) error {
	account.InitTimestamps()

	if err := s.Accounts.Create(ctx, account.Username, account); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return ErrAccountExists
		}
		return err
	}
	return nil
}

// GetAccount retrieves an account by username.
func (s *Store) GetAccount(ctx context.Context, username string) (*domain.Account, error) {
	account, err := s.Accounts.Get(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// UpdateAccount replaces an existing account record.
func (s *Store) UpdateAccount(ctx context.Context, account *domain.Account) error {
	account.Touch()

	if err := s.Accounts.Update(ctx, account.Username, account); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// DeleteAccount removes an account. Deleting a missing account is not an
// error; the caller enforces existence checks where the API needs them.
func (s *Store) DeleteAccount(ctx context.Context, username string) error {
	return s.Accounts.Delete(ctx, username)
}

// ListAccounts returns an iterator over all accounts in username order.
func (s *Store) ListAccounts(ctx context.Context) iter.Seq2[*domain.Account, error] {
	return s.Accounts.List(ctx)
}

// CountAccounts returns the number of registered accounts.
func (s *Store) CountAccounts(ctx context.Context) (int, error) {
	return s.Accounts.Count(ctx)
}
