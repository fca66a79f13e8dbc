// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr normalises driver errors from every store backend into a small
// set of sentinels the service layer can branch on.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	// ErrNotFound is returned when a queried record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is matched by every [*DuplicateError].
	ErrDuplicate = errors.New("duplicate key")
)

// DuplicateError reports a unique index violation. Key names the violated
// index or constraint when the driver exposes it.
type DuplicateError struct {
	Key   string
	Cause error
}

func (e *DuplicateError) Error() string {
	if e.Key == "" {
		return ErrDuplicate.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDuplicate.Error(), e.Key)
}

func (e *DuplicateError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrDuplicate) true for every DuplicateError.
func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Wrap classifies a PostgreSQL error. Unknown errors are wrapped with the
// action name so logs show which query failed.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return &DuplicateError{Key: pgErr.ConstraintName, Cause: err}
	}

	return fmt.Errorf("postgres: %s: %w", action, err)
}

// WrapMongo classifies a MongoDB error, including the 11000 duplicate-key code.
func WrapMongo(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateError{Cause: err}
	}

	return fmt.Errorf("mongo: %s: %w", action, err)
}
