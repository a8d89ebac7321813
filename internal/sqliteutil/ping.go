package sqliteutil

import (
	"context"
	"fmt"
)

// Ping verifies database connectivity with a lightweight query.
// It executes "SELECT 1" to check the handle is usable without loading
// any data or touching user tables. Used by readiness endpoints.
func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.db == nil {
		return ErrInvalidHandle
	}

	var result int
	if err := db.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("database ping returned unexpected result: %d", result)
	}

	return nil
}
