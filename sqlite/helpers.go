package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/TheOne1006/kbsite"
)

// parseRFC3339 parses a timestamp column, naming the column on failure.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", column, err)
	}
	return t, nil
}

// appendPagination adds LIMIT and OFFSET for positive values. SQLite needs
// a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// requireAffected returns ENOTFOUND with the formatted message when the
// statement changed no rows.
func requireAffected(result sql.Result, format string, args ...any) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return kbsite.Errorf(kbsite.ENOTFOUND, format, args...)
	}
	return nil
}
