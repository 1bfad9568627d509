// ABOUTME: Typed storage errors shared by all Repository implementations.
// ABOUTME: Absence and not-owner both surface as ErrNotFound.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no record matches, or when a record exists
// but is owned by another user. The two cases are indistinguishable to the
// caller so record existence never leaks across users.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned on unique-constraint violations.
var ErrConflict = errors.New("already exists")

// classify maps driver constraint errors onto the shared sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key") {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
