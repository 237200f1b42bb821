// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, sqlite, memory) inside this directory.
package repository

import "errors"

// ErrNotFound is returned when a note id does not match any stored row.
var ErrNotFound = errors.New("note not found")
