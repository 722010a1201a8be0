package repository

import (
	"context"
	"strings"

	"lynxhire/internal/database"
	"lynxhire/internal/domain/profile"

	"github.com/google/uuid"
)



type ProfileRepository interface {
	Create(ctx context.Context, p profile.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	GetByEmail(ctx context.Context, email string) (profile.Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateFullName(ctx context.Context, id uuid.UUID, fullName *string) error
	SetOnboardingComplete(ctx context.Context, id uuid.UUID) error
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, email, password_hash, full_name, role, onboarding_complete, created_at, updated_at`

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	var role string
	if err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &role, &p.OnboardingComplete, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.Role = profile.Role(role)
	return p, nil
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (id, email, password_hash, full_name, role)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, strings.ToLower(strings.TrimSpace(p.Email)), p.PasswordHash, p.FullName, string(p.Role),
	)
	if database.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

func (r *PostgresProfileRepository) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	))
}

func (r *PostgresProfileRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`, strings.ToLower(strings.TrimSpace(email)))
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresProfileRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresProfileRepository) UpdateFullName(ctx context.Context, id uuid.UUID, fullName *string) error {
	n, err := r.db.Exec(ctx, `UPDATE profiles SET full_name = $1, updated_at = now() WHERE id = $2`, fullName, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) SetOnboardingComplete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `UPDATE profiles SET onboarding_complete = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, COALESCE(full_name, '') FROM profiles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
