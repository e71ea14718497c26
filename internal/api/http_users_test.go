package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"userhub/internal/entity"

	"github.com/gin-gonic/gin"
)

func TestRegisterFlow(t *testing.T) {
	_, r := newTestServer(t)

	w := doRequest(t, r, http.MethodPost, "/api/users", "", gin.H{
		"full_name": "Jane Doe",
		"user_name": "janed",
		"email":     "jane@x.com",
		"password":  "Secret@123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Data    struct {
			ID       uint   `json:"id"`
			FullName string `json:"full_name"`
			UserName string `json:"user_name"`
			Email    string `json:"email"`
			Role     string `json:"role"`
			Token    string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.ID == 0 || resp.Data.Token == "" {
		t.Fatalf("expected id and token, got %+v", resp.Data)
	}
	if resp.Data.Role != entity.UserRoleUser {
		t.Fatalf("expected default role user, got %s", resp.Data.Role)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response must not carry any password field: %s", w.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, r := newTestServer(t)
	registerViaAPI(t, r, "Jane Doe", "janed", "jane@x.com", "Secret@123", "")

	w := doRequest(t, r, http.MethodPost, "/api/users", "", gin.H{
		"full_name": "Other Jane",
		"user_name": "otherjane",
		"email":     "jane@x.com",
		"password":  "Secret@123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if apiErr := decodeError(t, w); apiErr.Message != "Email already exists" {
		t.Fatalf("expected 'Email already exists', got %q", apiErr.Message)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, r := newTestServer(t)
	registerViaAPI(t, r, "Jane Doe", "janed", "jane@x.com", "Secret@123", "")

	w := doRequest(t, r, http.MethodPost, "/api/users", "", gin.H{
		"full_name": "Other Jane",
		"user_name": "janed",
		"email":     "other@x.com",
		"password":  "Secret@123",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if apiErr := decodeError(t, w); apiErr.Message != "Username already exists" {
		t.Fatalf("expected 'Username already exists', got %q", apiErr.Message)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, r := newTestServer(t)

	w := doRequest(t, r, http.MethodPost, "/api/users", "", gin.H{
		"full_name": "J",
		"user_name": "ab",
		"email":     "not-an-email",
		"password":  "weak",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	apiErr := decodeError(t, w)
	if apiErr.Code != ErrCodeValidationFailed {
		t.Fatalf("expected %s, got %s", ErrCodeValidationFailed, apiErr.Code)
	}
	if apiErr.Details == nil {
		t.Fatal("expected field details in validation response")
	}
}

func TestLoginFlow(t *testing.T) {
	_, r := newTestServer(t)
	registerViaAPI(t, r, "Jane Doe", "janed", "jane@x.com", "Secret@123", "")

	// By email and by user name.
	for _, identifier := range []string{"jane@x.com", "janed"} {
		w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
			"identifier": identifier,
			"password":   "Secret@123",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("login with %q failed with %d: %s", identifier, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "token") {
			t.Fatalf("expected token in login response: %s", w.Body.String())
		}
	}

	// Wrong password and unknown identifier are indistinguishable.
	for _, attempt := range []gin.H{
		{"identifier": "jane@x.com", "password": "Wrong@123"},
		{"identifier": "ghost@x.com", "password": "Secret@123"},
	} {
		w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", attempt)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
		}
		if apiErr := decodeError(t, w); apiErr.Message != "Invalid credentials" {
			t.Fatalf("expected 'Invalid credentials', got %q", apiErr.Message)
		}
	}
}

func TestGetUserSelfAccess(t *testing.T) {
	_, r := newTestServer(t)

	idA, tokenA := registerViaAPI(t, r, "User A", "usera", "a@x.com", "Secret@123", "")
	idB, _ := registerViaAPI(t, r, "User B", "userb", "b@x.com", "Secret@123", "")

	// Own record succeeds and never includes a password field.
	w := doRequest(t, r, http.MethodGet, "/api/users/"+itoa(idA), tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response must not carry any password field: %s", w.Body.String())
	}

	// A foreign id is rejected even though the token is valid.
	w = doRequest(t, r, http.MethodGet, "/api/users/"+itoa(idB), tokenA, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign id, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateUserFlow(t *testing.T) {
	_, r := newTestServer(t)

	idA, tokenA := registerViaAPI(t, r, "User A", "usera", "a@x.com", "Secret@123", "")
	idB, _ := registerViaAPI(t, r, "User B", "userb", "b@x.com", "Secret@123", "")

	// Partial update of the full name.
	w := doRequest(t, r, http.MethodPatch, "/api/users/"+itoa(idA), tokenA, gin.H{
		"full_name": "Renamed A",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var summary entity.UserSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if summary.FullName != "Renamed A" || summary.Email != "a@x.com" {
		t.Fatalf("unexpected summary after update: %+v", summary)
	}

	// Someone else's email conflicts.
	w = doRequest(t, r, http.MethodPatch, "/api/users/"+itoa(idA), tokenA, gin.H{
		"email": "b@x.com",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if apiErr := decodeError(t, w); apiErr.Message != "Email already exists" {
		t.Fatalf("expected 'Email already exists', got %q", apiErr.Message)
	}

	// A foreign id is rejected.
	w = doRequest(t, r, http.MethodPatch, "/api/users/"+itoa(idB), tokenA, gin.H{
		"full_name": "Hijacked",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign id, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteUserFlow(t *testing.T) {
	handler, r := newTestServer(t)

	_, adminToken := registerViaAPI(t, r, "Admin User", "adminuser", "admin@x.com", "Secret@123", entity.UserRoleAdmin)
	idA, tokenA := registerViaAPI(t, r, "User A", "usera", "a@x.com", "Secret@123", "")

	w := doRequest(t, r, http.MethodDelete, "/api/users/"+itoa(idA), tokenA, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "User deleted successfully") {
		t.Fatalf("expected success message, got %s", w.Body.String())
	}

	// The row survives in storage with deleted=true.
	stored, err := handler.repo.GetUserByID(context.Background(), idA)
	if err != nil {
		t.Fatalf("expected row to remain in storage: %v", err)
	}
	if !stored.Deleted {
		t.Fatal("expected deleted flag to be set")
	}

	// The admin listing omits the soft-deleted account.
	w = doRequest(t, r, http.MethodGet, "/api/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("listing failed with %d: %s", w.Code, w.Body.String())
	}
	var listing entity.UserListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	for _, u := range listing.Users {
		if u.ID == idA {
			t.Fatal("expected soft-deleted account to be omitted from listing")
		}
	}
}

func TestListUsersFlow(t *testing.T) {
	_, r := newTestServer(t)

	adminID, adminToken := registerViaAPI(t, r, "Admin User", "adminuser", "admin@x.com", "Secret@123", entity.UserRoleAdmin)
	registerViaAPI(t, r, "User A", "usera", "a@x.com", "Secret@123", "")
	registerViaAPI(t, r, "User B", "userb", "b@x.com", "Secret@123", "")

	w := doRequest(t, r, http.MethodGet, "/api/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var listing entity.UserListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	if listing.Count != 2 {
		t.Fatalf("expected count 2, got %d", listing.Count)
	}
	for _, u := range listing.Users {
		if u.ID == adminID {
			t.Fatal("expected caller to be excluded from its own listing")
		}
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("listing must not carry any password field: %s", w.Body.String())
	}

	// Equality filter plus pagination parameters.
	w = doRequest(t, r, http.MethodGet, "/api/users?user_name=usera&page=1&limit=10", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("filtered listing failed with %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("failed to decode listing: %v", err)
	}
	if listing.Count != 1 || len(listing.Users) != 1 || listing.Users[0].UserName != "usera" {
		t.Fatalf("expected only usera, got %+v", listing)
	}
}

func TestInvalidUserIDParam(t *testing.T) {
	_, r := newTestServer(t)
	_, token := registerViaAPI(t, r, "User A", "usera", "a@x.com", "Secret@123", "")

	w := doRequest(t, r, http.MethodGet, "/api/users/abc", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
}
