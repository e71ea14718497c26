package entity

import "testing"

func validRegisterRequest() *UserRegisterRequest {
	return &UserRegisterRequest{
		FullName: "Jane Doe",
		UserName: "janed",
		Email:    "jane@x.com",
		Password: "Secret@123",
	}
}

func TestValidateRegisterAcceptsValidPayload(t *testing.T) {
	if errs := ValidateRegister(validRegisterRequest()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRegisterFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UserRegisterRequest)
		field   string
	}{
		{"short full_name", func(r *UserRegisterRequest) { r.FullName = "J" }, "full_name"},
		{"long full_name", func(r *UserRegisterRequest) { r.FullName = "This full name is way too long to fit" }, "full_name"},
		{"short user_name", func(r *UserRegisterRequest) { r.UserName = "ab" }, "user_name"},
		{"long user_name", func(r *UserRegisterRequest) { r.UserName = "sixteencharacter" }, "user_name"},
		{"missing email", func(r *UserRegisterRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *UserRegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"over-long email", func(r *UserRegisterRequest) { r.Email = "averyveryverylongaddressindeed@example-domain.com" }, "email"},
		{"short password", func(r *UserRegisterRequest) { r.Password = "Ab@1" }, "password"},
		{"no uppercase", func(r *UserRegisterRequest) { r.Password = "secret@123" }, "password"},
		{"no lowercase", func(r *UserRegisterRequest) { r.Password = "SECRET@123" }, "password"},
		{"no digit", func(r *UserRegisterRequest) { r.Password = "Secret@abc" }, "password"},
		{"no special", func(r *UserRegisterRequest) { r.Password = "Secret1234" }, "password"},
		{"forbidden character", func(r *UserRegisterRequest) { r.Password = "Secret#123" }, "password"},
		{"unknown role", func(r *UserRegisterRequest) { r.Role = "owner" }, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(req)
			errs := ValidateRegister(req)
			if len(errs) == 0 {
				t.Fatalf("expected an error for field %s", tt.field)
			}
			found := false
			for _, fe := range errs {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error for field %s, got %v", tt.field, errs)
			}
		})
	}
}

func TestValidateRegisterAllowsKnownRoles(t *testing.T) {
	for _, role := range []string{UserRoleAdmin, UserRoleUser, UserRoleHustler, ""} {
		req := validRegisterRequest()
		req.Role = role
		if errs := ValidateRegister(req); len(errs) != 0 {
			t.Fatalf("expected role %q to be accepted, got %v", role, errs)
		}
	}
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin(&AuthLoginRequest{Identifier: "janed", Password: "Secret@123"}); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if errs := ValidateLogin(&AuthLoginRequest{}); len(errs) != 2 {
		t.Fatalf("expected identifier and password errors, got %v", errs)
	}
}

func TestValidateUpdate(t *testing.T) {
	email := "new@x.com"
	name := "New Name"
	if errs := ValidateUpdate(&UserUpdateRequest{Email: &email, FullName: &name}); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	bad := "nope"
	if errs := ValidateUpdate(&UserUpdateRequest{Email: &bad}); len(errs) == 0 {
		t.Fatal("expected malformed email to be rejected")
	}
	short := "x"
	if errs := ValidateUpdate(&UserUpdateRequest{FullName: &short}); len(errs) == 0 {
		t.Fatal("expected short full_name to be rejected")
	}
	if errs := ValidateUpdate(&UserUpdateRequest{}); len(errs) != 0 {
		t.Fatalf("expected empty update to be valid, got %v", errs)
	}
}

func TestSanitizeRole(t *testing.T) {
	if got := SanitizeRole(" Admin "); got != UserRoleAdmin {
		t.Fatalf("expected admin, got %q", got)
	}
	if got := SanitizeRole("hustler"); got != UserRoleHustler {
		t.Fatalf("expected hustler, got %q", got)
	}
	if got := SanitizeRole("root"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
