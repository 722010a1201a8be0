package usecase

import (
	"context"

	"lynxhire/internal/domain/profile"
	ucuser "lynxhire/internal/usecase/user"
)

type UserUsecase interface {
	GetMe(ctx context.Context, caller profile.Caller) (ucuser.Me, error)
	UpdateMe(ctx context.Context, caller profile.Caller, in ucuser.UpdateMeInput) (ucuser.Me, error)
	UpsertCandidateProfile(ctx context.Context, caller profile.Caller, in ucuser.CandidateProfileInput) (profile.CandidateProfile, error)
	UpsertCompany(ctx context.Context, caller profile.Caller, in ucuser.CompanyInput) (profile.Company, error)
	CompleteOnboarding(ctx context.Context, caller profile.Caller) error
	UploadResume(ctx context.Context, caller profile.Caller, up ucuser.Upload) (string, error)
	UploadLogo(ctx context.Context, caller profile.Caller, up ucuser.Upload) (string, error)
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(svc *ucuser.Service) *User {
	return &User{svc: svc}
}

func (u *User) GetMe(ctx context.Context, caller profile.Caller) (ucuser.Me, error) {
	if !caller.Authenticated() {
		return ucuser.Me{}, ErrUnauthorized
	}
	return u.svc.GetMe(ctx, caller)
}

func (u *User) UpdateMe(ctx context.Context, caller profile.Caller, in ucuser.UpdateMeInput) (ucuser.Me, error) {
	if !caller.Authenticated() {
		return ucuser.Me{}, ErrUnauthorized
	}
	return u.svc.UpdateMe(ctx, caller, in)
}

func (u *User) UpsertCandidateProfile(ctx context.Context, caller profile.Caller, in ucuser.CandidateProfileInput) (profile.CandidateProfile, error) {
	if !caller.Authenticated() {
		return profile.CandidateProfile{}, ErrUnauthorized
	}
	return u.svc.UpsertCandidateProfile(ctx, caller, in)
}

func (u *User) UpsertCompany(ctx context.Context, caller profile.Caller, in ucuser.CompanyInput) (profile.Company, error) {
	if !caller.Authenticated() {
		return profile.Company{}, ErrUnauthorized
	}
	return u.svc.UpsertCompany(ctx, caller, in)
}

func (u *User) CompleteOnboarding(ctx context.Context, caller profile.Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthorized
	}
	return u.svc.CompleteOnboarding(ctx, caller)
}

func (u *User) UploadResume(ctx context.Context, caller profile.Caller, up ucuser.Upload) (string, error) {
	if !caller.Authenticated() {
		return "", ErrUnauthorized
	}
	return u.svc.UploadResume(ctx, caller, up)
}

func (u *User) UploadLogo(ctx context.Context, caller profile.Caller, up ucuser.Upload) (string, error) {
	if !caller.Authenticated() {
		return "", ErrUnauthorized
	}
	return u.svc.UploadLogo(ctx, caller, up)
}
