package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"guidemarket/internal/domain"
)

// classify maps driver errors onto the domain taxonomy. Anything that is not a
// constraint violation means the store could not serve the request.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateEmail) ||
		errors.Is(err, domain.ErrValidation) {
		return err
	}
	if isUniqueViolation(err) {
		if violatesEmail(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("%s: record already exists: %w", op, domain.ErrValidation)
	}
	return domain.Unavailable(op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "SQLSTATE 23505")
}

func violatesEmail(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.Contains(pgErr.ConstraintName, "email")
	}
	return strings.Contains(err.Error(), "email")
}
