package localfs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/memohai/linehook/internal/media"
)

func TestProvider_Path(t *testing.T) {
	t.Parallel()
	p := &Provider{dir: "/srv/downloaded"}

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "123.jpg", want: "/srv/downloaded/123.jpg"},
		{key: "sub/123.mp4", want: "/srv/downloaded/sub/123.mp4"},
		{key: "/absolute/path", wantErr: true},
		{key: "../escape", wantErr: true},
		{key: "..", wantErr: true},
		{key: ".", wantErr: true},
		{key: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := p.Path(tt.key)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Path(%q) expected error", tt.key)
			}
			continue
		}
		if err != nil {
			t.Errorf("Path(%q) unexpected error: %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Path(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestProvider_AccessPath(t *testing.T) {
	t.Parallel()
	p := &Provider{dir: "/srv/downloaded", baseURL: "https://bot.example.com", prefix: "/downloaded"}

	tests := []struct {
		key  string
		want string
	}{
		{key: "123.jpg", want: "https://bot.example.com/downloaded/123.jpg"},
		{key: "/preview.png", want: "https://bot.example.com/downloaded/preview.png"},
	}
	for _, tt := range tests {
		got := p.AccessPath(tt.key)
		if got != tt.want {
			t.Errorf("AccessPath(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestNewNormalizesURLParts(t *testing.T) {
	t.Parallel()

	p, err := New(filepath.Join(t.TempDir(), "nested", "downloaded"), "https://bot.example.com/", "downloaded/")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := os.Stat(p.Dir()); err != nil {
		t.Fatalf("directory should be created: %v", err)
	}
	if got := p.AccessPath("1.m4a"); got != "https://bot.example.com/downloaded/1.m4a" {
		t.Fatalf("unexpected access path: %s", got)
	}
}

func TestProvider_Put(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	p, err := New(tmpDir, "https://bot", "/downloaded")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	data := []byte("hello media content")
	if err := p.Put(context.Background(), "42.jpg", bytes.NewReader(data)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(tmpDir, "42.jpg"))
	if err != nil {
		t.Fatalf("file not found on disk: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("stored %q, want %q", got, data)
	}

	if err := p.Put(context.Background(), "42.jpg", bytes.NewReader([]byte("v2"))); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _ = os.ReadFile(filepath.Join(tmpDir, "42.jpg"))
	if string(got) != "v2" {
		t.Errorf("overwrite stored %q", got)
	}
}

type failingReader struct {
	data []byte
	done bool
}

func (r *failingReader) Read(b []byte) (int, error) {
	if r.done {
		return 0, errors.New("connection reset")
	}
	r.done = true
	return copy(b, r.data), nil
}

func TestProvider_PutKeepsPartialFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	p, err := New(tmpDir, "https://bot", "/downloaded")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	err = p.Put(context.Background(), "partial.mp4", &failingReader{data: []byte("head")})
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected write error, got %v", err)
	}
	got, err := os.ReadFile(filepath.Join(tmpDir, "partial.mp4"))
	if err != nil {
		t.Fatalf("partial file should remain: %v", err)
	}
	if string(got) != "head" {
		t.Fatalf("unexpected partial content: %q", got)
	}
}

func TestProvider_PathTraversal(t *testing.T) {
	t.Parallel()
	p := &Provider{dir: "/srv/downloaded"}

	bad := []string{
		"../etc/passwd",
		"sub/../../escape",
	}
	for _, key := range bad {
		if _, err := p.Path(key); !errors.Is(err, media.ErrPathTraversal) {
			t.Errorf("Path(%q) should reject traversal, got %v", key, err)
		}
	}
}
