package seeder

import (
	"context"
	"fmt"
	"strings"

	"lynxhire/internal/database"
)

// requireColumns fails when the migrated schema lacks any of the columns a
// seeder writes, naming all of them at once.
func requireColumns(ctx context.Context, q database.Querier, table string, columns ...string) error {
	rows, err := q.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if !existing[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s is missing %s (run migrate first)", table, strings.Join(missing, ", "))
	}
	return nil
}
