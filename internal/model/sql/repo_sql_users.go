package sql

import (
	"context"
	"fmt"
	"strings"

	"userhub/internal/entity"
)

// CreateUser persists a new user record; the database assigns the id.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// SaveUser writes back the full row of an existing user.
func (r *GormRepository) SaveUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil || user.ID == 0 {
		return fmt.Errorf("invalid user")
	}
	return r.db.WithContext(ctx).Save(user).Error
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads a user by email.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(trimmed)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmailOrUsername loads the first user whose email or user name
// matches. Passing the same value for both arguments resolves a login
// identifier.
func (r *GormRepository) GetUserByEmailOrUsername(ctx context.Context, email, userName string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	userName = strings.TrimSpace(userName)
	if email == "" && userName == "" {
		return nil, fmt.Errorf("email and user name are empty")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ? OR user_name = ?", email, userName).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns non-deleted users matching the query, excluding the
// given account, plus the total match count before paging.
func (r *GormRepository) ListUsers(ctx context.Context, params *entity.UserQuery, excludeID uint) ([]entity.DbUser, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("deleted = ?", false)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if params != nil {
		if userName := strings.TrimSpace(params.UserName); userName != "" {
			query = query.Where("user_name = ?", userName)
		}
		if email := strings.TrimSpace(params.Email); email != "" {
			query = query.Where("LOWER(email) = ?", strings.ToLower(email))
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := 1
	limit := 10
	if params != nil {
		if params.Page > 0 {
			page = params.Page
		}
		if params.Limit > 0 {
			limit = params.Limit
		}
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	var users []entity.DbUser
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// CountUsers returns total user count, soft-deleted rows included.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
