package service

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	InitJWTWithSecret("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("user_id = %d; want 42", userID)
	}
}

func TestJWTRejectsTampering(t *testing.T) {
	InitJWTWithSecret("test-secret")

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseJWT(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}

	// token signed with a different key must not verify
	InitJWTWithSecret("other-secret")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("token verified with wrong secret")
	}
}
