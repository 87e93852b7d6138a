package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// sqlStateErrors maps PostgreSQL SQLSTATE codes the repositories can
// trigger to domain sentinels.
var sqlStateErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"23502": domain.ErrValidation,    // not_null_violation
	"22P02": domain.ErrValidation,    // invalid_text_representation
	"40001": domain.ErrConflict,      // serialization_failure
	"40P01": domain.ErrConflict,      // deadlock_detected
}

// MapError converts driver errors into domain errors for entity/id.
// Context errors pass through, known SQLSTATEs become sentinels (naming the
// violated constraint when there is one) and everything else is a
// *domain.StoreError, which the resolver treats as a degraded source.
func MapError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	subject := entity
	if id != "" {
		subject += " " + id
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", subject, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", subject, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "57014" { // query_canceled, statement_timeout
			return fmt.Errorf("%s: %w", subject, context.DeadlineExceeded)
		}
		if sentinel, ok := sqlStateErrors[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s (%s): %w", subject, pgErr.ConstraintName, sentinel)
			}
			return fmt.Errorf("%s: %w", subject, sentinel)
		}
	}

	return domain.NewStoreError(subject, err)
}
