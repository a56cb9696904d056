package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/orbis-catalog/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
// Anything the engine reports that has no domain meaning becomes ErrStorage.
func MapError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}

	ref := entity
	if id != 0 {
		ref = fmt.Sprintf("%s %d", entity, id)
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", ref, err)
	}

	// already mapped
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrStorage) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", ref, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", ref, &domain.ConflictError{
				Table: entity,
				Key:   map[string]any{"constraint": pgErr.ConstraintName},
			})
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", ref, domain.ErrNotFound)
		case "23502": // not_null_violation
			return fmt.Errorf("%s: %w", ref, domain.NewValidationError(pgErr.ColumnName, "required"))
		case "23514": // check_violation
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			return fmt.Errorf("%s: %w", ref, domain.NewValidationError(field, "invalid value"))
		}
	}

	return fmt.Errorf("%s: %w: %w", ref, domain.ErrStorage, err)
}
