package usecase

import (
	"errors"
	"testing"
	"time"

	authdto "taskbot/internal/auth/dto"
	"taskbot/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

func newTestUsecase(t *testing.T, expiry time.Duration) AuthUsecase {
	t.Helper()
	uc, err := NewAuthUsecase(&config.Config{
		DashboardUser:     "admin",
		DashboardPassword: "s3cret",
		JWTSecret:         "test-secret",
		JWTAccessExpiry:   expiry,
	})
	if err != nil {
		t.Fatalf("NewAuthUsecase failed: %v", err)
	}
	return uc
}

func TestLoginAndValidate(t *testing.T) {
	uc := newTestUsecase(t, time.Minute)

	resp, err := uc.Login(&authdto.LoginRequest{Username: "admin", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.ExpiresIn != 60 {
		t.Errorf("Unexpected token response %+v", resp)
	}

	admin, err := uc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if admin.Username != "admin" {
		t.Errorf("Expected admin, got %s", admin.Username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc := newTestUsecase(t, time.Minute)

	for _, req := range []authdto.LoginRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "s3cret"},
	} {
		if _, err := uc.Login(&req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials for %+v, got %v", req, err)
		}
	}
}

func TestValidateTokenRejections(t *testing.T) {
	uc := newTestUsecase(t, -time.Minute)

	resp, err := uc.Login(&authdto.LoginRequest{Username: "admin", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := uc.ValidateToken(resp.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected expired token to be rejected, got %v", err)
	}

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := forged.SignedString([]byte("other-secret"))
	if _, err := uc.ValidateToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected foreign signature to be rejected, got %v", err)
	}

	if _, err := uc.ValidateToken("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected garbage to be rejected, got %v", err)
	}
}
