package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lynxhire/internal/pkg/jwt"
	ucauth "lynxhire/internal/usecase/auth"
)

func newAuth() (*Auth, *jwt.HMACService) {
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthUsecase(newFakeProfiles(), svc), svc
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	uc, svc := newAuth()
	ctx := context.Background()

	p, access, refresh, err := uc.Register(ctx, ucauth.RegisterInput{
		Email: "  Maya@Example.com ", Password: "correct-horse", Role: "employer", FullName: "Maya",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.Email != "maya@example.com" || p.PasswordHash != "" {
		t.Fatalf("unexpected profile: %+v", p)
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("access token: %v", err)
	}
	if claims.UserID != p.ID || claims.Role != "employer" || svc.IsRefreshToken(claims) {
		t.Fatalf("unexpected access claims: %+v", claims)
	}

	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "maya@example.com", Password: "wrong-pass"}); !errors.Is(err, ucauth.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := uc.Login(ctx, ucauth.LoginInput{Email: "maya@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	newAccess, _, err := uc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err = svc.ValidateToken(newAccess)
	if err != nil || claims.Role != "employer" {
		t.Fatalf("refreshed token must carry the stored role: %+v %v", claims, err)
	}
}

func TestAuth_RegisterRejections(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	if _, _, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "a@b.co", Password: "longenough", Role: "candidate"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name string
		in   ucauth.RegisterInput
		want error
	}{
		{"taken", ucauth.RegisterInput{Email: "A@b.co", Password: "longenough", Role: "candidate"}, ucauth.ErrEmailAlreadyRegistered},
		{"short password", ucauth.RegisterInput{Email: "x@b.co", Password: "short", Role: "candidate"}, ucauth.ErrInvalidInput},
		{"bad email", ucauth.RegisterInput{Email: "nope", Password: "longenough", Role: "candidate"}, ucauth.ErrInvalidInput},
		{"bad role", ucauth.RegisterInput{Email: "y@b.co", Password: "longenough", Role: "admin"}, ucauth.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := uc.Register(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuth_RefreshRejectsAccessToken(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, access, _, err := uc.Register(ctx, ucauth.RegisterInput{Email: "c@d.co", Password: "longenough", Role: "candidate"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := uc.Refresh(ctx, access); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
	if _, _, err := uc.Refresh(ctx, "garbage"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
	if _, _, err := uc.Refresh(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
