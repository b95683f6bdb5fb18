package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, "habit-analytics")
	userID, sessionID := uuid.New(), uuid.New()

	token, expiresAt, err := tm.GenerateAccessToken(userID, sessionID)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("token already expired")
	}

	claims, err := tm.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != userID || claims.SessionID != sessionID {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateRejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, "habit-analytics")
	userID := uuid.New()

	wrongSecret, _, _ := NewTokenManager("other", time.Minute, "habit-analytics").GenerateAccessToken(userID, uuid.New())
	wrongIssuer, _, _ := NewTokenManager("secret", time.Minute, "someone-else").GenerateAccessToken(userID, uuid.New())
	expired, _, _ := NewTokenManager("secret", -time.Minute, "habit-analytics").GenerateAccessToken(userID, uuid.New())

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           userID,
		TokenType:        "refresh",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "habit-analytics"},
	})
	refreshToken, err := refresh.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": wrongSecret,
		"wrong issuer": wrongIssuer,
		"expired":      expired,
		"refresh":      refreshToken,
	} {
		if _, err := tm.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: err = %v", name, err)
		}
	}
}
