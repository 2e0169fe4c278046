package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDatabaseInternal marks storage failures that are not the caller's fault.
var ErrDatabaseInternal = errors.New("database internal error")

// region error translation helpers

// WrapGormError turns a low-level database error into one the handlers understand.
// Parameters:
//   - rawErr: the error returned by GORM or the driver underneath it
//
// Returns:
//   - error: one of the package sentinels, or ErrDatabaseInternal wrapping rawErr
func WrapGormError(rawErr error) error {
	if rawErr == nil {
		return nil
	}

	switch {
	case errors.Is(rawErr, gorm.ErrRecordNotFound):
		return NewNotFound(nil)
	case errors.Is(rawErr, gorm.ErrDuplicatedKey):
		return NewConflict(nil)
	case errors.Is(rawErr, gorm.ErrForeignKeyViolated):
		return NewValidation(nil)
	}

	// MySQL driver errors
	var mysqlErr *mysql.MySQLError
	if errors.As(rawErr, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062: // duplicate entry
			return NewConflict(nil)
		case 1451, 1452: // foreign key constraint
			return NewValidation(nil)
		case 1045, 1049, 1146: // access denied, unknown database, missing table
			return fmt.Errorf("%w: %s", ErrDatabaseInternal, mysqlErr.Message)
		}
	}

	// Postgres driver errors
	var pgErr *pgconn.PgError
	if errors.As(rawErr, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return NewConflict(nil)
		case "23503": // foreign_key_violation
			return NewValidation(nil)
		}
	}

	// SQLite reports constraint failures only in the message when translation is off.
	msg := rawErr.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return NewConflict(nil)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return NewValidation(nil)
	}

	return fmt.Errorf("%w: %w", ErrDatabaseInternal, rawErr)
}

// IsDuplicateError reports whether err is a unique-constraint violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, gorm.ErrDuplicatedKey)
}
