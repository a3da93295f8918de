package auth

import (
	"testing"
	"time"

	"rideshare/internal/domain"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Issue("rider-1", domain.RoleRider)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, role, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "rider-1" {
		t.Errorf("expected subject rider-1, got %s", subject)
	}
	if role != domain.RoleRider {
		t.Errorf("expected rider role, got %s", role)
	}
}

func TestTokenManager_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue("driver-1", domain.RoleDriver)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, _, err := verifier.Verify(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_ExpiredTokenRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue("rider-1", domain.RoleRider)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, _, err := manager.Verify(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_GarbageRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	if _, _, err := manager.Verify("not-a-token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !CheckPassword(hash, "hunter2") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("expected mismatched password to fail")
	}
}
