package media_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/linehook/internal/media"
	"github.com/memohai/linehook/internal/media/providers/localfs"
)

type fakeSource struct {
	content map[string][]byte
	err     error
	calls   []string
}

func (s *fakeSource) Content(_ context.Context, messageID string) (io.ReadCloser, error) {
	s.calls = append(s.calls, messageID)
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.content[messageID]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type brokenStream struct{}

func (brokenStream) Read([]byte) (int, error) { return 0, errors.New("stream reset") }
func (brokenStream) Close() error             { return nil }

type brokenSource struct{}

func (brokenSource) Content(context.Context, string) (io.ReadCloser, error) {
	return brokenStream{}, nil
}

func newProvider(t *testing.T) (*localfs.Provider, string) {
	t.Helper()
	dir := t.TempDir()
	p, err := localfs.New(dir, "https://bot.example.com", "/downloaded")
	require.NoError(t, err)
	return p, dir
}

func TestFetchRoundTrip(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 256*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	provider, dir := newProvider(t)
	source := &fakeSource{content: map[string][]byte{"m-1": payload}}
	svc := media.NewService(nil, source, provider)

	path, err := svc.Fetch(context.Background(), "m-1", "m-1.bin")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "m-1.bin"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, got), "downloaded bytes differ")
	assert.Equal(t, []string{"m-1"}, source.calls)
}

func TestDownloadUsesDeterministicName(t *testing.T) {
	t.Parallel()

	provider, dir := newProvider(t)
	source := &fakeSource{content: map[string][]byte{"100": []byte("img"), "200": []byte("vid"), "300": []byte("aud")}}
	svc := media.NewService(nil, source, provider)

	tests := []struct {
		id        string
		mediaType media.MediaType
		name      string
	}{
		{id: "100", mediaType: media.MediaTypeImage, name: "100.jpg"},
		{id: "200", mediaType: media.MediaTypeVideo, name: "200.mp4"},
		{id: "300", mediaType: media.MediaTypeAudio, name: "300.m4a"},
	}
	for _, tt := range tests {
		asset, err := svc.Download(context.Background(), tt.id, tt.mediaType)
		require.NoError(t, err)
		assert.Equal(t, tt.name, asset.Name)
		assert.Equal(t, filepath.Join(dir, tt.name), asset.Path)
		assert.Equal(t, "https://bot.example.com/downloaded/"+tt.name, asset.URL)
		assert.Equal(t, tt.mediaType, asset.MediaType)
	}
}

func TestFetchOpenFailureIsStreamError(t *testing.T) {
	t.Parallel()

	provider, _ := newProvider(t)
	cause := errors.New("platform down")
	svc := media.NewService(nil, &fakeSource{err: cause}, provider)

	_, err := svc.Fetch(context.Background(), "m-1", "m-1.jpg")
	var streamErr *media.StreamError
	require.True(t, errors.As(err, &streamErr), "expected StreamError, got %v", err)
	assert.Equal(t, "m-1", streamErr.MessageID)
	assert.ErrorIs(t, err, cause)
}

func TestFetchCopyFailureIsStreamError(t *testing.T) {
	t.Parallel()

	provider, dir := newProvider(t)
	svc := media.NewService(nil, brokenSource{}, provider)

	_, err := svc.Fetch(context.Background(), "m-2", "m-2.mp4")
	var streamErr *media.StreamError
	require.True(t, errors.As(err, &streamErr), "expected StreamError, got %v", err)
	assert.Equal(t, filepath.Join(dir, "m-2.mp4"), streamErr.Path)
	assert.Contains(t, err.Error(), "stream reset")
}

func TestFetchRequiresDependencies(t *testing.T) {
	t.Parallel()

	provider, _ := newProvider(t)

	_, err := media.NewService(nil, nil, provider).Fetch(context.Background(), "m", "m.jpg")
	assert.ErrorIs(t, err, media.ErrSourceUnavailable)

	_, err = media.NewService(nil, &fakeSource{}, nil).Fetch(context.Background(), "m", "m.jpg")
	assert.ErrorIs(t, err, media.ErrProviderUnavailable)

	_, err = media.NewService(nil, &fakeSource{}, provider).Fetch(context.Background(), " ", "m.jpg")
	assert.Error(t, err)
}

func TestFetchRejectsTraversal(t *testing.T) {
	t.Parallel()

	provider, _ := newProvider(t)
	source := &fakeSource{content: map[string][]byte{"m": []byte("x")}}
	svc := media.NewService(nil, source, provider)

	_, err := svc.Fetch(context.Background(), "m", "../m.jpg")
	assert.ErrorIs(t, err, media.ErrPathTraversal)
	assert.Empty(t, source.calls)
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.jpg", media.FileName("1", media.MediaTypeImage))
	assert.Equal(t, "1.bin", media.FileName("1", media.MediaType("file")))
}
