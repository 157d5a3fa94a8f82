// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. For example, ErrEmailExists signals
// that a registration collided with the unique email constraint, while
// ErrNotFound covers lookups that matched no row.
package repository

import "errors"

// ErrEmailExists is returned when an insert into tblusers violates the
// unique constraint on the email column. Handlers should translate this
// into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup matches no row. Handlers should
// translate this into an HTTP 404 response, or into the generic
// authentication failure on the login path.
var ErrNotFound = errors.New("not found")
