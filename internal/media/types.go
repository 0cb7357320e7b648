package media

import (
	"context"
	"io"
)

// MediaType classifies the kind of media content.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
)

// Extension returns the file extension used for downloaded content of this
// type, including the leading dot.
func (t MediaType) Extension() string {
	switch t {
	case MediaTypeImage:
		return ".jpg"
	case MediaTypeVideo:
		return ".mp4"
	case MediaTypeAudio:
		return ".m4a"
	default:
		return ".bin"
	}
}

// FileName returns the deterministic file name for a message's content.
func FileName(messageID string, mediaType MediaType) string {
	return messageID + mediaType.Extension()
}

// Asset is a downloaded media file.
type Asset struct {
	MessageID string    `json:"message_id"`
	MediaType MediaType `json:"media_type"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
}

// ContentSource opens the binary content of a platform-hosted message.
type ContentSource interface {
	Content(ctx context.Context, messageID string) (io.ReadCloser, error)
}

// StorageProvider abstracts where downloaded files are written.
type StorageProvider interface {
	// Put writes data to storage under the given key.
	Put(ctx context.Context, key string, reader io.Reader) error
	// Path returns the on-disk location of key.
	Path(key string) (string, error)
	// AccessPath returns the public URL of a storage key.
	AccessPath(key string) string
}
