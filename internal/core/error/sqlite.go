package errx

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// SQLiteErrorMessage describes SQLite related failures.
const SQLiteErrorMessage = "sqlite operation failed"

// WrapSQLite maps database/sql errors to AppError. sql.ErrNoRows becomes a 404
// that also matches ErrNotFound.
func WrapSQLite(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return New(fmt.Errorf("%w: %w", ErrNotFound, err), http.StatusNotFound, NotFoundMessage)
	}

	return New(err, http.StatusInternalServerError, SQLiteErrorMessage)
}
