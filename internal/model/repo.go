package model

import (
	"context"

	"userhub/internal/entity"
)

// Repository defines the persistence operations over user accounts.
type Repository interface {
	CreateUser(ctx context.Context, user *entity.DbUser) error
	SaveUser(ctx context.Context, user *entity.DbUser) error
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByEmailOrUsername(ctx context.Context, email, userName string) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery, excludeID uint) ([]entity.DbUser, int64, error)
	CountUsers(ctx context.Context) (int64, error)
}
