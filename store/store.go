// Package store wraps the MongoDB collections behind small typed stores.
package store

import "errors"

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")
