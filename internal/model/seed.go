package model

import (
	"context"
	"errors"
	"micromon/internal/auth"
	"micromon/internal/config"
	"micromon/internal/entity"
	"strings"

	"gorm.io/gorm"
)

type accountSeed struct {
	Username string
	Email    string
	Password string
	Role     string
}

// SeedBootstrapData ensures the bootstrap accounts and the settings singleton
// exist. Check-then-insert, idempotent across restarts; single-instance
// startup is assumed, so the check is not serialized against concurrent cold
// starts.
func SeedBootstrapData(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	for _, seed := range buildAccountSeeds(cfg) {
		if err := ensureAccount(ctx, repo, seed); err != nil {
			return err
		}
	}

	return ensureSettingsRow(ctx, repo)
}

func buildAccountSeeds(cfg config.Config) []accountSeed {
	return []accountSeed{
		{
			Username: strings.TrimSpace(cfg.AdminUsername),
			Email:    strings.TrimSpace(cfg.AdminEmail),
			Password: cfg.AdminPassword,
			Role:     entity.UserRoleAdmin,
		},
		{
			Username: strings.TrimSpace(cfg.OperatorUsername),
			Email:    strings.TrimSpace(cfg.OperatorEmail),
			Password: cfg.OperatorPassword,
			Role:     entity.UserRoleUser,
		},
	}
}

func ensureAccount(ctx context.Context, repo Repository, seed accountSeed) error {
	if seed.Username == "" || seed.Password == "" {
		return nil
	}

	_, err := repo.GetUserByUsername(ctx, seed.Username)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	hash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	return repo.CreateUser(ctx, &entity.DbUser{
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: hash,
		Role:         seed.Role,
		Status:       entity.UserStatusActive,
	})
}

func ensureSettingsRow(ctx context.Context, repo Repository) error {
	_, err := repo.GetSystemSettings(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	return repo.SaveSystemSettings(ctx, &entity.DbSystemSettings{
		BackupEnabled:       false,
		NotificationEnabled: false,
		BackupFrequency:     entity.BackupFrequencyDaily,
	})
}
