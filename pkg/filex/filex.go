// Package filex holds the client-side view of a chosen file and the
// predicates used to accept or reject it before upload.
package filex

import (
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"

	DefaultMaxMB = 10
	MaxFileSize  = DefaultMaxMB * 1024 * 1024
)

var acceptedTypes = []string{MimePDF, MimeDOCX, MimeDOC}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// File is a transient, in-memory file chosen by the user
type File struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// New builds a File whose size is taken from data
func New(name, contentType string, data []byte) *File {
	return &File{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		Data:        data,
	}
}

// Open reads a file from disk and guesses its content type
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return New(filepath.Base(path), DetectContentType(filepath.Base(path), data), data), nil
}

// DetectContentType prefers the extension for document types and sniffs otherwise
func DetectContentType(name string, data []byte) string {
	switch strings.ToLower(FileExtension(name)) {
	case "pdf":
		return MimePDF
	case "docx":
		return MimeDOCX
	case "doc":
		return MimeDOC
	}
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

// AcceptedTypes returns the MIME types allowed for resumes
func AcceptedTypes() []string {
	return slices.Clone(acceptedTypes)
}

func IsAcceptedFileType(f *File) bool {
	if f == nil {
		return false
	}
	return slices.Contains(acceptedTypes, f.ContentType)
}

func IsAcceptableFileSize(f *File, maxMB int) bool {
	if f == nil {
		return false
	}
	return f.Size <= int64(maxMB)*1024*1024
}

// FormatByteSize renders a byte count with up to two decimals, e.g. 1536 -> "1.5 KB"
func FormatByteSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	// floor(log1024(bytes)) in integer arithmetic, clamped to the unit table
	i := 0
	for n := bytes; n >= 1024 && i < len(sizeUnits)-1; n /= 1024 {
		i++
	}

	value := float64(bytes) / math.Pow(1024, float64(i))
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 2, 64), 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[i]
}

// FileExtension returns what follows the last dot, or the whole name
func FileExtension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return name
	}
	return name[i+1:]
}
