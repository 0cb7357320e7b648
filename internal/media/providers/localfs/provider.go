// Package localfs implements media.StorageProvider on a local directory that
// is also served over HTTP. Writing <dir>/<key> makes the file reachable at
// <baseURL><prefix>/<key>.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/memohai/linehook/internal/media"
)

// Provider stores downloaded media in a single directory.
type Provider struct {
	dir     string
	baseURL string
	prefix  string
}

// New creates the directory if needed and returns a provider rooted at it.
// baseURL and prefix together form the public URL of the directory.
func New(dir, baseURL, prefix string) (*Provider, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve media dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Provider{
		dir:     abs,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		prefix:  "/" + strings.Trim(strings.TrimSpace(prefix), "/"),
	}, nil
}

// Dir returns the absolute storage directory.
func (p *Provider) Dir() string {
	return p.dir
}

// Put writes data to <dir>/<key>. A failed copy leaves the partial file.
func (p *Provider) Put(_ context.Context, key string, reader io.Reader) error {
	dest, err := p.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// AccessPath returns the public URL for a storage key.
// Key "123.jpg" with base "https://bot" and prefix "/downloaded" →
// "https://bot/downloaded/123.jpg".
func (p *Provider) AccessPath(key string) string {
	return p.baseURL + p.prefix + "/" + filepath.ToSlash(strings.TrimLeft(key, "/"))
}

// Path converts a storage key into the on-disk file path.
func (p *Provider) Path(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("storage key is required")
	}
	clean := filepath.Clean(key)
	if filepath.IsAbs(clean) {
		return "", fmt.Errorf("absolute key is forbidden: %s", key)
	}
	if strings.HasPrefix(clean, ".."+string(filepath.Separator)) || clean == ".." || clean == "." {
		return "", fmt.Errorf("%w: %s", media.ErrPathTraversal, key)
	}
	joined := filepath.Join(p.dir, clean)
	if !strings.HasPrefix(joined, p.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", media.ErrPathTraversal, key)
	}
	return joined, nil
}
