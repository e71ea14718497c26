package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"userhub/internal/auth"
	"userhub/internal/entity"
	"userhub/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Domain errors surfaced to the HTTP boundary. Anything else coming out
// of the service is treated as an internal failure.
var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotSelf            = errors.New("account can only act on its own record")
)

// UserService orchestrates account lifecycle and authentication.
type UserService struct {
	repo   model.Repository
	tokens *auth.Manager
}

// NewUserService creates the account service.
func NewUserService(repo model.Repository, tokens *auth.Manager) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates a new account, hashes the password before
// persistence and issues a token for the fresh account.
func (s *UserService) Register(ctx context.Context, req *entity.UserRegisterRequest) (*entity.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	userName := strings.TrimSpace(req.UserName)

	logrus.WithField("user_name", userName).Info("creating new user")

	existing, err := s.repo.GetUserByEmailOrUsername(ctx, email, userName)
	switch {
	case err == nil:
		if strings.EqualFold(existing.Email, email) {
			return nil, ErrEmailTaken
		}
		return nil, ErrUsernameTaken
	case errors.Is(err, gorm.ErrRecordNotFound):
		// free to register
	default:
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := entity.SanitizeRole(req.Role)
	if role == "" {
		role = entity.UserRoleUser
	}

	user := &entity.DbUser{
		FullName:     strings.TrimSpace(req.FullName),
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent registration; report the
			// column that actually collided.
			return nil, s.classifyRegisterConflict(ctx, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      entity.MakeUserSummary(user),
	}, nil
}

func (s *UserService) classifyRegisterConflict(ctx context.Context, email string) error {
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Login resolves the identifier as an email or user name and issues a
// token when the password matches. Unknown identifiers, wrong passwords
// and soft-deleted accounts are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*entity.AuthResponse, error) {
	identifier = strings.TrimSpace(identifier)

	var (
		user *entity.DbUser
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.repo.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.repo.GetUserByEmailOrUsername(ctx, identifier, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to resolve login identifier: %w", err)
	}

	if user.Deleted {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      entity.MakeUserSummary(user),
	}, nil
}

// ListUsers returns the admin listing: non-deleted accounts other than
// the caller, optionally filtered by exact user_name/email.
func (s *UserService) ListUsers(ctx context.Context, caller *entity.DbUser, query *entity.UserQuery) (*entity.UserListResponse, error) {
	if caller == nil {
		return nil, ErrUserNotFound
	}

	users, count, err := s.repo.ListUsers(ctx, query, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	response := &entity.UserListResponse{
		Users: make([]entity.UserSummary, 0, len(users)),
		Count: count,
	}
	for idx := range users {
		response.Users = append(response.Users, entity.MakeUserSummary(&users[idx]))
	}
	return response, nil
}

// GetUser loads an account under the strict self-access rule.
func (s *UserService) GetUser(ctx context.Context, caller *entity.DbUser, id uint) (*entity.DbUser, error) {
	return s.authorizeSelfAndLoad(ctx, caller, id)
}

// UpdateUser applies a partial update to the caller's own account. A
// supplied email must not belong to a different account.
func (s *UserService) UpdateUser(ctx context.Context, caller *entity.DbUser, id uint, req *entity.UserUpdateRequest) (*entity.DbUser, error) {
	user, err := s.authorizeSelfAndLoad(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		other, err := s.repo.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			if other.ID != user.ID {
				return nil, ErrEmailTaken
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// email free
		default:
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		user.Email = email
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// DeleteUser soft-deletes the caller's own account. The row stays in
// storage with deleted=true.
func (s *UserService) DeleteUser(ctx context.Context, caller *entity.DbUser, id uint) error {
	user, err := s.authorizeSelfAndLoad(ctx, caller, id)
	if err != nil {
		return err
	}

	user.Deleted = true
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to soft delete user: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("user soft deleted")
	return nil
}

// authorizeSelfAndLoad enforces the strict self-access rule before
// touching storage: authorization is checked first, so probing foreign
// ids never reveals whether they exist.
func (s *UserService) authorizeSelfAndLoad(ctx context.Context, caller *entity.DbUser, id uint) (*entity.DbUser, error) {
	if caller == nil || id != caller.ID {
		return nil, ErrNotSelf
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
