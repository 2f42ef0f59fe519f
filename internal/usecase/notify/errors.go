package notify

import "errors"

var (
	// ErrChannelDisabled is returned by Send on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidEvent is returned when an event has no article snapshot.
	ErrInvalidEvent = errors.New("invalid bookmark event")
)
