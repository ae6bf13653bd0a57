package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadflow/leadflow-backend/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// ref identifies the row in the message (an id, an email, or "" for bulk ops).
// context.DeadlineExceeded and context.Canceled are NOT mapped: they pass through.
func MapError(err error, entity string, ref any) error {
	if err == nil {
		return nil
	}

	label := entity
	if s := fmt.Sprint(ref); ref != nil && s != "" {
		label = entity + " " + s
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", label, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", label, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", label, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", label, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w", label, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s: %w", label, err)
}
