// Package repository defines data access for the platform. Implementations live in
// subpackages (postgres) and contain no business rules.
//
// Finders return sql.ErrNoRows when nothing matches; services translate it.
package repository

import "errors"

var (
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStale is returned when a conditional update matched no row because
	// the record changed since it was read.
	ErrStale = errors.New("record changed concurrently")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
