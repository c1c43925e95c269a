// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/minhdao/carlex/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides driver details from run reports while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows                → NOT_FOUND
//   - SQLSTATE 23505 (unique)      → CONFLICT
//   - SQLSTATE 23503 (foreign key) → CONFLICT; a delete that would orphan
//     dependent rows must fail loudly, never succeed partially
//   - connection / cancellation    → STORE_UNAVAILABLE (batch-level abort)
//   - anything else                → INTERNAL_ERROR
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(fmt.Sprintf("Duplicate row rejected during %s", action), err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict(fmt.Sprintf("Dependent rows still reference the target of %s", action), err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return apperr.Unavailable(fmt.Sprintf("Store unreachable during %s", action), err)
	}

	// Unknown query errors become internal errors.
	return apperr.Internal(err)
}
