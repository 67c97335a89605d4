package app

import "errors"

// ErrNotFound reports a reference to an owner, activity, or entry that does
// not exist in storage.
var ErrNotFound = errors.New("not found")
