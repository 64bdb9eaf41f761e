package fsxlocal

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Abraxas-365/hireflow/pkg/fsx"
)

func TestLocalFileSystemRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}

	p := fs.Join("resumes", "abc", "cv.pdf")
	if err := fs.WriteFile(ctx, p, []byte("%PDF-1.4")); err != nil {
		t.Fatalf("write: %v", err)
	}

	ok, err := fs.Exists(ctx, p)
	if err != nil || !ok {
		t.Fatalf("expected file to exist, ok=%v err=%v", ok, err)
	}

	stream, err := fs.ReadFileStream(ctx, p)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	data, _ := io.ReadAll(stream)
	stream.Close()
	if string(data) != "%PDF-1.4" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := fs.DeleteFile(ctx, p); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := fs.ReadFile(ctx, p); !errors.Is(err, fsx.ErrNotExist) {
		t.Fatalf("expected ErrNotExist after delete, got %v", err)
	}
}

func TestLocalFileSystemStaysInRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fs, err := NewLocalFileSystem(root)
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}

	if err := fs.WriteFile(ctx, "../../escape.txt", []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	ok, err := fs.Exists(ctx, "escape.txt")
	if err != nil || !ok {
		t.Fatalf("traversal must be clamped inside the root, ok=%v err=%v", ok, err)
	}
}
