// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements PostgreSQL-backed persistence for the catalog.
// All writes are idempotent upserts keyed on the entity's natural identity
// (category id, product code) so a full re-sync can be retried wholesale.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced to callers for precondition failures.
var (
	// ErrNotFound is returned when the referenced entity or association
	// does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrConflict is returned when an entity or association already exists.
	ErrConflict = errors.New("store: already exists")
)

// foreign key violation, per the PostgreSQL error code catalog.
const pgFKViolation = "23503"

// isFKViolation reports whether err is a PostgreSQL foreign key violation,
// meaning a referenced product or category row does not exist.
func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgFKViolation
}
