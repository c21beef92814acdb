package service

import "testing"

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("demo123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "demo123456" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "demo123456") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Fatal("wrong password accepted")
	}
}
