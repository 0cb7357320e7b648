package media

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable indicates the storage provider is not configured.
	ErrProviderUnavailable = errors.New("storage provider unavailable")
	// ErrSourceUnavailable indicates no content source is configured.
	ErrSourceUnavailable = errors.New("content source unavailable")
	// ErrPathTraversal indicates a storage key attempted directory traversal.
	ErrPathTraversal = errors.New("path traversal is forbidden")
)

// StreamError reports a failed content download. The destination file may
// hold a partial copy.
type StreamError struct {
	MessageID string
	Path      string
	Err       error
}

func (e *StreamError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("stream content of message %s: %v", e.MessageID, e.Err)
	}
	return fmt.Sprintf("stream content of message %s to %s: %v", e.MessageID, e.Path, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
