package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	apperrors "github.com/jwalitptl/arogyavax/pkg/errors"
)

const uniqueViolation = "23505"

// wrapError translates driver errors: missing rows become not-found and
// unique violations become conflicts. Everything else is wrapped with op.
func wrapError(err error, resource, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound(resource, err)
	}
	if isUniqueViolation(err) {
		return apperrors.NewConflict(fmt.Sprintf("%s already exists", resource), err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// requireAffected turns a zero-row write into a not-found error.
func requireAffected(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound(resource, nil)
	}
	return nil
}

func isNotFound(err error) bool {
	return apperrors.Is(err, apperrors.ErrNotFound)
}

func isConflict(err error) bool {
	return apperrors.Is(err, apperrors.ErrConflict)
}
