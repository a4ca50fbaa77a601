package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Sentinel errors for database operations.
var (
	// ErrTransactionConflict indicates a concurrent publish touched the same rows.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrNotFound indicates nothing has been published yet.
	ErrNotFound = errors.New("not found")

	// ErrSchema indicates a row was rejected by a field assertion.
	ErrSchema = errors.New("schema violation")
)

// wrapQueryError maps known SurrealDB query errors onto the sentinels above.
// Other errors are returned unchanged.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}

	var queryErr *surrealdb.QueryError
	if errors.As(err, &queryErr) {
		msg := queryErr.Message
		switch {
		case strings.Contains(msg, "Transaction conflict"):
			return fmt.Errorf("%w: %s", ErrTransactionConflict, msg)
		case strings.Contains(msg, "Found") && strings.Contains(msg, "but expected"),
			strings.Contains(msg, "assertion"):
			return fmt.Errorf("%w: %s", ErrSchema, msg)
		}
	}
	return err
}
