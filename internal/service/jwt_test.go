package service

import (
	"testing"
)

func TestJWT_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateJWT(123)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 123 {
		t.Fatalf("user id: got %d, want 123", userID)
	}
}

func TestJWT_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	if _, err := ParseJWT("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	InitJWT()
	token, err := GenerateJWT(5)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	InitJWT()
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}
