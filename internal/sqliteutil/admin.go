package sqliteutil

import (
	"context"
	"fmt"
)

// Exec runs a single SQL statement with no result-row processing (schema
// changes, inserts, deletes). Engine failure is reported as ErrExecFailed
// carrying the native code, message, and offending SQL text. A failed
// statement leaves the handle open and usable.
func (db *DB) Exec(ctx context.Context, sqlText string) error {
	if db == nil || db.db == nil {
		return ErrInvalidHandle
	}

	if _, err := db.db.ExecContext(ctx, sqlText); err != nil {
		db.logger.Error("could not execute SQL",
			"sql", sqlText,
			"code", engineCode(err),
			"error", err)
		return fmt.Errorf("%w: %q: %v", ErrExecFailed, sqlText, err)
	}

	return nil
}

// CountRows returns the number of rows in table. The table name is
// validated before being interpolated into SQL; names must come from
// trusted call sites, never external input.
func (db *DB) CountRows(ctx context.Context, table string) (int64, error) {
	if db == nil || db.db == nil {
		return 0, ErrInvalidHandle
	}
	if err := db.checkIdentifier("count rows", table); err != nil {
		return 0, err
	}

	query := "SELECT COUNT(*) FROM " + table

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		db.logger.Error("could not count table rows",
			"table", table,
			"code", engineCode(err),
			"error", err)
		return 0, fmt.Errorf("%w: counting rows in %s: %v", ErrQueryFailed, table, err)
	}
	defer rows.Close() //nolint:errcheck

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			db.logger.Error("could not step count query", "table", table, "error", err)
			return 0, fmt.Errorf("%w: counting rows in %s: %v", ErrQueryFailed, table, err)
		}
		db.logger.Error("count query returned no rows", "table", table)
		return 0, fmt.Errorf("%w: counting rows in %s: no result row", ErrQueryFailed, table)
	}

	var count int64
	if err := rows.Scan(&count); err != nil {
		db.logger.Error("could not read row count", "table", table, "error", err)
		return 0, fmt.Errorf("%w: counting rows in %s: %v", ErrScanFailed, table, err)
	}

	return count, nil
}

// MaxIntValue returns the largest integer value in column of table.
// An empty table yields 0 and no error; callers rely on the zero sentinel
// meaning "no rows" rather than "query failed". A value that cannot be
// read as an integer is reported as ErrScanFailed.
func (db *DB) MaxIntValue(ctx context.Context, table, column string) (int64, error) {
	if db == nil || db.db == nil {
		return 0, ErrInvalidHandle
	}
	if err := db.checkIdentifier("max value", table); err != nil {
		return 0, err
	}
	if err := db.checkIdentifier("max value", column); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s DESC LIMIT 1", column, table, column)

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		db.logger.Error("could not query max value",
			"table", table,
			"column", column,
			"code", engineCode(err),
			"error", err)
		return 0, fmt.Errorf("%w: max of %s.%s: %v", ErrQueryFailed, table, column, err)
	}
	defer rows.Close() //nolint:errcheck

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			db.logger.Error("could not step max value query",
				"table", table,
				"column", column,
				"error", err)
			return 0, fmt.Errorf("%w: max of %s.%s: %v", ErrQueryFailed, table, column, err)
		}
		// No rows in the table - zero is the defined "no entries" result.
		return 0, nil
	}

	var max int64
	if err := rows.Scan(&max); err != nil {
		db.logger.Error("could not read max value",
			"table", table,
			"column", column,
			"error", err)
		return 0, fmt.Errorf("%w: max of %s.%s: %v", ErrScanFailed, table, column, err)
	}

	return max, nil
}

// ClearTable deletes all rows from table. Any failure is reported as
// ErrClearFailed.
func (db *DB) ClearTable(ctx context.Context, table string) error {
	if db == nil || db.db == nil {
		return ErrInvalidHandle
	}
	if err := db.checkIdentifier("clear table", table); err != nil {
		return err
	}

	if _, err := db.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		db.logger.Error("could not clear table",
			"table", table,
			"code", engineCode(err),
			"error", err)
		return fmt.Errorf("%w: clearing %s: %v", ErrClearFailed, table, err)
	}

	return nil
}

// checkIdentifier validates a schema object name and logs the rejection.
func (db *DB) checkIdentifier(op, name string) error {
	if err := ValidateIdentifier(name); err != nil {
		db.logger.Error("rejected SQL identifier", "operation", op, "identifier", name)
		return err
	}
	return nil
}
