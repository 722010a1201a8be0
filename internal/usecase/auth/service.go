package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"lynxhire/internal/domain/profile"
	"lynxhire/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Password string
	Role     string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	profiles repository.ProfileRepository
}

func NewService(profiles repository.ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (profile.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return profile.Profile{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return profile.Profile{}, ErrInvalidInput
	}
	role, ok := profile.ParseRole(in.Role)
	if !ok {
		return profile.Profile{}, ErrInvalidInput
	}

	exists, err := s.profiles.ExistsByEmail(ctx, email)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	if exists {
		return profile.Profile{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}

	p := profile.Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if name := strings.TrimSpace(in.FullName); name != "" {
		p.FullName = &name
	}

	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return profile.Profile{}, ErrEmailAlreadyRegistered
		}
		return profile.Profile{}, ErrInternal
	}

	created, err := s.profiles.GetByID(ctx, p.ID)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return sanitizeProfile(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (profile.Profile, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return profile.Profile{}, ErrInvalidCredentials
	}

	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.Profile{}, ErrInvalidCredentials
		}
		return profile.Profile{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return profile.Profile{}, ErrInvalidCredentials
	}

	return sanitizeProfile(p), nil
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeProfile(p profile.Profile) profile.Profile {
	p.PasswordHash = ""
	return p
}
