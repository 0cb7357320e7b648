package line

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEventKind indicates a webhook event type the bot does not handle.
	ErrUnknownEventKind = errors.New("unknown event kind")
	// ErrUnknownMessageKind indicates a message type the bot does not handle.
	ErrUnknownMessageKind = errors.New("unknown message kind")
	// ErrInvalidSignature indicates the x-line-signature header did not match the body.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// PlatformAPIError is returned when the platform rejects an outbound call or
// when a reply would be rejected because it violates the message schema.
type PlatformAPIError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *PlatformAPIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("line %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("line %s: %v", e.Op, e.Err)
}

func (e *PlatformAPIError) Unwrap() error {
	return e.Err
}
