package property

import "errors"

var (
	// ErrEmptyName is returned when an entry or lookup uses an empty property name.
	ErrEmptyName = errors.New("property name must not be empty")
)
