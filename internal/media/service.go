package media

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Service downloads platform-hosted message content into local storage.
type Service struct {
	source   ContentSource
	provider StorageProvider
	logger   *slog.Logger
}

// NewService creates a media service reading from source and writing through
// provider.
func NewService(log *slog.Logger, source ContentSource, provider StorageProvider) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		source:   source,
		provider: provider,
		logger:   log.With(slog.String("service", "media")),
	}
}

// Fetch streams the content of messageID into the storage key name and
// returns the destination path once the stream reached end-of-data. Any
// failure while opening or copying the stream is a *StreamError; a partial
// file is left in place.
func (s *Service) Fetch(ctx context.Context, messageID, name string) (string, error) {
	if s.provider == nil {
		return "", ErrProviderUnavailable
	}
	if s.source == nil {
		return "", ErrSourceUnavailable
	}
	if strings.TrimSpace(messageID) == "" {
		return "", fmt.Errorf("message id is required")
	}
	dest, err := s.provider.Path(name)
	if err != nil {
		return "", err
	}

	s.logger.Debug("fetching content", slog.String("message_id", messageID), slog.String("path", dest))
	stream, err := s.source.Content(ctx, messageID)
	if err != nil {
		return "", &StreamError{MessageID: messageID, Err: err}
	}
	defer func() {
		_ = stream.Close()
	}()
	if err := s.provider.Put(ctx, name, stream); err != nil {
		return "", &StreamError{MessageID: messageID, Path: dest, Err: err}
	}
	return dest, nil
}

// Download fetches the content of a media message under its deterministic
// name and returns the stored asset with its public URL.
func (s *Service) Download(ctx context.Context, messageID string, mediaType MediaType) (Asset, error) {
	name := FileName(messageID, mediaType)
	path, err := s.Fetch(ctx, messageID, name)
	if err != nil {
		return Asset{}, err
	}
	base := filepath.Base(path)
	asset := Asset{
		MessageID: messageID,
		MediaType: mediaType,
		Name:      base,
		Path:      path,
		URL:       s.provider.AccessPath(base),
	}
	s.logger.Info("content downloaded",
		slog.String("message_id", messageID),
		slog.String("media_type", string(mediaType)),
		slog.String("path", path),
	)
	return asset, nil
}

// AccessPath returns the public URL of a stored file name.
func (s *Service) AccessPath(name string) string {
	if s.provider == nil {
		return ""
	}
	return s.provider.AccessPath(name)
}
