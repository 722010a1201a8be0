package usecase

import (
	"context"
	"errors"

	"lynxhire/internal/domain/profile"
	"lynxhire/internal/pkg/jwt"
	"lynxhire/internal/repository"
	ucauth "lynxhire/internal/usecase/auth"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (profile.Profile, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (profile.Profile, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc  *ucauth.Service
	profiles repository.ProfileRepository
	jwt      jwt.Service
}

func NewAuthUsecase(profiles repository.ProfileRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(profiles), profiles: profiles, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (profile.Profile, string, string, error) {
	p, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return profile.Profile{}, "", "", err
	}
	access, refresh, err := u.issue(p)
	if err != nil {
		return profile.Profile{}, "", "", err
	}
	return p, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (profile.Profile, string, string, error) {
	p, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return profile.Profile{}, "", "", err
	}
	access, refresh, err := u.issue(p)
	if err != nil {
		return profile.Profile{}, "", "", err
	}
	return p, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	p, err := u.profiles.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	return u.issue(p)
}

func (u *Auth) issue(p profile.Profile) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email, string(p.Role))
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}
