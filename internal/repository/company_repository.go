package repository

import (
	"context"

	"lynxhire/internal/database"
	"lynxhire/internal/domain/profile"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	GetByProfileID(ctx context.Context, profileID uuid.UUID) (profile.Company, error)
	Upsert(ctx context.Context, c profile.Company) (profile.Company, error)
	SetLogoURL(ctx context.Context, profileID uuid.UUID, url string) error
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, profile_id, name, description, culture, industry, size, website, logo_url, created_at`

func scanCompany(row database.Row) (profile.Company, error) {
	var c profile.Company
	if err := row.Scan(&c.ID, &c.ProfileID, &c.Name, &c.Description, &c.Culture, &c.Industry, &c.Size, &c.Website, &c.LogoURL, &c.CreatedAt); err != nil {
		if database.IsNoRows(err) {
			return profile.Company{}, ErrNotFound
		}
		return profile.Company{}, err
	}
	return c, nil
}

func (r *PostgresCompanyRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (profile.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE profile_id = $1`, profileID))
}

func (r *PostgresCompanyRepository) Upsert(ctx context.Context, c profile.Company) (profile.Company, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return scanCompany(r.db.QueryRow(ctx,
		`INSERT INTO companies (id, profile_id, name, description, culture, industry, size, website, logo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (profile_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			culture = EXCLUDED.culture,
			industry = EXCLUDED.industry,
			size = EXCLUDED.size,
			website = EXCLUDED.website,
			logo_url = COALESCE(EXCLUDED.logo_url, companies.logo_url)
		 RETURNING `+companyColumns,
		c.ID, c.ProfileID, c.Name, c.Description, c.Culture, c.Industry, c.Size, c.Website, c.LogoURL,
	))
}

func (r *PostgresCompanyRepository) SetLogoURL(ctx context.Context, profileID uuid.UUID, url string) error {
	n, err := r.db.Exec(ctx, `UPDATE companies SET logo_url = $1 WHERE profile_id = $2`, url, profileID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
