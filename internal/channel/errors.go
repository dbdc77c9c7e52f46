package channel

import "errors"

var (
	// ErrMissingConnector is reported for a channel without a connector attribute.
	ErrMissingConnector = errors.New("channel has no connector attribute")
	// ErrDirectionConflict is reported for a channel name declared both incoming and outgoing.
	ErrDirectionConflict = errors.New("channel declared as both incoming and outgoing")
)
