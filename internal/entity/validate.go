package entity

import (
	"net/mail"
	"strings"
)

const passwordSpecials = "@$!%*?&"

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateRegister checks a registration payload and returns one entry
// per invalid field.
func ValidateRegister(req *UserRegisterRequest) []FieldError {
	var errs []FieldError
	if req == nil {
		return []FieldError{{Field: "body", Message: "request body is required"}}
	}

	if n := len(strings.TrimSpace(req.FullName)); n < 2 || n > 30 {
		errs = append(errs, FieldError{Field: "full_name", Message: "full_name must be between 2 and 30 characters"})
	}
	if n := len(strings.TrimSpace(req.UserName)); n < 3 || n > 15 {
		errs = append(errs, FieldError{Field: "user_name", Message: "user_name must be between 3 and 15 characters"})
	}
	if msg := validateEmail(req.Email); msg != "" {
		errs = append(errs, FieldError{Field: "email", Message: msg})
	}
	if msg := validatePassword(req.Password); msg != "" {
		errs = append(errs, FieldError{Field: "password", Message: msg})
	}
	if role := strings.TrimSpace(req.Role); role != "" && SanitizeRole(role) == "" {
		errs = append(errs, FieldError{Field: "role", Message: "role must be one of admin, user, hustler"})
	}
	return errs
}

// ValidateLogin checks a login payload.
func ValidateLogin(req *AuthLoginRequest) []FieldError {
	var errs []FieldError
	if req == nil {
		return []FieldError{{Field: "body", Message: "request body is required"}}
	}
	if strings.TrimSpace(req.Identifier) == "" {
		errs = append(errs, FieldError{Field: "identifier", Message: "identifier is required"})
	}
	if strings.TrimSpace(req.Password) == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	return errs
}

// ValidateUpdate checks a partial-update payload. Supplied fields must
// still satisfy the registration constraints.
func ValidateUpdate(req *UserUpdateRequest) []FieldError {
	var errs []FieldError
	if req == nil {
		return []FieldError{{Field: "body", Message: "request body is required"}}
	}
	if req.Email != nil {
		if msg := validateEmail(*req.Email); msg != "" {
			errs = append(errs, FieldError{Field: "email", Message: msg})
		}
	}
	if req.FullName != nil {
		if n := len(strings.TrimSpace(*req.FullName)); n < 2 || n > 30 {
			errs = append(errs, FieldError{Field: "full_name", Message: "full_name must be between 2 and 30 characters"})
		}
	}
	return errs
}

// SanitizeRole normalises a role name, returning "" when it is not a
// member of the closed role set.
func SanitizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case UserRoleAdmin:
		return UserRoleAdmin
	case UserRoleUser:
		return UserRoleUser
	case UserRoleHustler:
		return UserRoleHustler
	default:
		return ""
	}
}

func validateEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "email is required"
	}
	if len(trimmed) > 40 {
		return "email must not exceed 40 characters"
	}
	if addr, err := mail.ParseAddress(trimmed); err != nil || addr.Address != trimmed {
		return "email must be a valid email address"
	}
	return ""
}

// validatePassword enforces the password policy: 8-20 characters with
// at least one lowercase letter, one uppercase letter, one digit and
// one of @$!%*?&, drawn only from that alphabet.
func validatePassword(password string) string {
	const policy = "password must contain 8 to 20 characters with at least one uppercase letter, one lowercase letter, one number and one special character"

	if len(password) < 8 || len(password) > 20 {
		return policy
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return policy
		}
	}
	if !lower || !upper || !digit || !special {
		return policy
	}
	return ""
}
