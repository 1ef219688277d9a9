package domain

import "errors"

// ErrAlreadyExists is returned by repositories when an insert hits a
// unique constraint.
var ErrAlreadyExists = errors.New("already exists")
