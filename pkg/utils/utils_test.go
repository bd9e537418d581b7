package utils

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-1", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(time.Now()) {
		t.Errorf("expiration = %v, %v", exp, err)
	}
}

func TestParseJWTRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired, err := GenerateJWT("user-1", "user", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if _, err := ParseJWT(expired); err == nil {
		t.Error("expired token accepted")
	}

	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}

	good, _ := GenerateJWT("user-1", "user", time.Hour)
	t.Setenv("JWT_SECRET", "rotated")
	if _, err := ParseJWT(good); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPassword("correct horse", string(hash)) {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword("wrong", string(hash)) {
		t.Error("CheckPassword accepted the wrong password")
	}
}
