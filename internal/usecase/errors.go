package usecase

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrRoleForbidden        = errors.New("role forbidden")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("duplicate application")
	ErrJobUnavailable       = errors.New("job unavailable")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrInvalidPlan          = errors.New("invalid plan")
	ErrNotConfigured        = errors.New("not configured")
	ErrScoringFailed        = errors.New("scoring failed")
	ErrUpstream             = errors.New("upstream error")
	ErrConflict             = errors.New("conflict")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrInternal             = errors.New("internal error")
)
