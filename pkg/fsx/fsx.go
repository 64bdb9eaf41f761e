package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned when a path has no stored file
var ErrNotExist = errors.New("fsx: file does not exist")

type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}

type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is the storage used for resumes and uploads
type FileSystem interface {
	FileReader
	FileWriter
	Join(elem ...string) string
}
