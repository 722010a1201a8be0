package seeder

import (
	"context"

	"lynxhire/internal/database"
)

// Seeder inserts fixed rows. Running it twice must leave the same data.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
