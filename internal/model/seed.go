package model

import (
	"context"
	"errors"
	"strings"

	"userhub/internal/auth"
	"userhub/internal/config"
	"userhub/internal/entity"

	"gorm.io/gorm"
)

// SeedAdminUser ensures the configured admin account exists. Nothing
// happens when no seed password is configured or the email is taken.
func SeedAdminUser(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.SeedAdminEmail))
	password := strings.TrimSpace(cfg.SeedAdminPassword)
	if email == "" || password == "" {
		return nil
	}

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		FullName:     strings.TrimSpace(cfg.SeedAdminFullName),
		UserName:     strings.TrimSpace(cfg.SeedAdminUserName),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleAdmin,
	}
	return repo.CreateUser(ctx, admin)
}
