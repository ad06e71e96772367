package store

import (
	"context"
	"fmt"

	"github.com/librasys/librasys-server/internal/auth"
	"github.com/librasys/librasys-server/internal/domain"
)

// SeedDefaults populates an empty database with the default accounts and a
// starter catalog. It is a no-op on databases that already hold data, so the
// server can call it unconditionally at startup.
//
// The default accounts carry legacy-format password hashes on purpose: the
// login flow upgrades them to argon2id on first successful login, which keeps
// the migration path exercised.
func (s *Store) SeedDefaults(ctx context.Context) error {
	accounts, err := s.CountAccounts(ctx)
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}

	if accounts == 0 {
		defaults := []domain.Account{
			{Username: "client", PasswordHash: auth.LegacyHash("123"), Role: domain.RoleClient},
			{Username: "admin", PasswordHash: auth.LegacyHash("456"), Role: domain.RoleAdmin},
			{Username: "superadmin", PasswordHash: auth.LegacyHash("789"), Role: domain.RoleSuperAdmin},
		}

		for i := range defaults {
			if err := s.CreateAccount(ctx, &defaults[i]); err != nil {
				return fmt.Errorf("seed account %s: %w", defaults[i].Username, err)
			}
		}

		if s.logger != nil {
			s.logger.Info("Seeded default accounts", "count", len(defaults))
		}
	}

	items, err := s.CountMedia(ctx)
	if err != nil {
		return fmt.Errorf("count media: %w", err)
	}

	if items == 0 {
		catalog := []*domain.Media{
			domain.NewBook("The Great Gatsby", "F. Scott Fitzgerald", 218),
			domain.NewVideo("Inception", 148, "4K"),
			domain.NewAudio("Dark Side of the Moon", "Pink Floyd", 43),
			domain.NewEbook("Clean Code", "Robert C. Martin", 464, 12.5, "PDF"),
			domain.NewAudiobook("Becoming", "Michelle Obama", 0, "Michelle Obama", 1140),
		}
		catalog[2].Available = false // seeded as borrowed

		for _, media := range catalog {
			if err := s.AddMedia(ctx, media); err != nil {
				return fmt.Errorf("seed media %q: %w", media.Title, err)
			}
		}

		if s.logger != nil {
			s.logger.Info("Seeded starter catalog", "count", len(catalog))
		}
	}

	return nil
}
