package core

import "errors"

// ErrNotFound signals an update or delete targeting a record that has
// vanished. It is an expected condition, distinct from an I/O failure.
var ErrNotFound = errors.New("not found")
