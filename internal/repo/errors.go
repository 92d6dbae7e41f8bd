// Package repo implements the data persistence layer for domain entities,
// backed by GORM.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a row is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Lookup functions (Find*) return (nil, nil) when nothing matches, so
//     callers can use them as existence checks without error plumbing.
//   - Inserts that hit a unique index return ErrDuplicate.
//   - On other DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that an insert collided with a unique index.
var ErrDuplicate = errors.New("duplicate")

// IsDuplicate reports whether err is a unique-constraint violation. It
// recognizes gorm.ErrDuplicatedKey (when TranslateError is enabled) and the
// plain-text errors glebarez/sqlite and Postgres emit otherwise.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}

// translateDuplicate maps unique violations to ErrDuplicate and passes every
// other error through unchanged.
func translateDuplicate(err error) error {
	if IsDuplicate(err) {
		return ErrDuplicate
	}
	return err
}
