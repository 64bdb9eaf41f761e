package pdf

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

var ErrNoPages = errors.New("pdf has no pages")

// PageCount opens the document and returns its number of pages
func PageCount(pdfData []byte) (int, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n < 1 {
		return 0, ErrNoPages
	}
	return n, nil
}
