package entity

import "time"

const (
	UserRoleAdmin   = "admin"
	UserRoleUser    = "user"
	UserRoleHustler = "hustler"
)

// DbUser represents a persisted user account.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	FullName     string    `gorm:"column:full_name;type:varchar(30);not null" json:"full_name"`
	UserName     string    `gorm:"column:user_name;type:varchar(15);uniqueIndex;not null" json:"user_name"`
	Email        string    `gorm:"column:email;type:varchar(40);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);index;not null;default:user" json:"role"`
	Deleted      bool      `gorm:"column:deleted;not null;default:false" json:"deleted"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// IsAdmin reports whether the account carries the admin role.
func (u *DbUser) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

// UserSummary is the public projection of an account. It never carries
// the password hash.
type UserSummary struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// MakeUserSummary converts a DbUser to its public projection.
func MakeUserSummary(u *DbUser) UserSummary {
	if u == nil {
		return UserSummary{}
	}
	return UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// UserQuery supports listing users with equality filters and pagination.
type UserQuery struct {
	UserName string `json:"user_name" form:"user_name" query:"user_name"`
	Email    string `json:"email" form:"email" query:"email"`
	Page     int    `json:"page" form:"page" query:"page"`
	Limit    int    `json:"limit" form:"limit" query:"limit"`
}

// UserRegisterRequest is the registration payload.
type UserRegisterRequest struct {
	FullName string `json:"full_name"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// AuthLoginRequest is the login payload. Identifier is either an email
// or a user name.
type AuthLoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UserUpdateRequest is the partial-update payload; nil fields are left
// untouched.
type UserUpdateRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// AuthResponse is returned after successful login/registration.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

// UserListResponse is the response for the admin listing.
type UserListResponse struct {
	Users []UserSummary `json:"users"`
	Count int64         `json:"count"`
}
