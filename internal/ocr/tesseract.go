package ocr

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Tesseract shells out to the tesseract CLI. It is the only OCR engine
// wired in; image text search degrades gracefully without it.
type Tesseract struct {
	binary string
}

// NewTesseract locates the recognition binary. An empty command falls back
// to looking up "tesseract" on PATH; a command containing a path separator
// is resolved as-is.
func NewTesseract(command string) (*Tesseract, error) {
	if command == "" {
		command = "tesseract"
	}
	bin, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", command, err)
	}
	return &Tesseract{binary: bin}, nil
}

func (t *Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	out, err := exec.CommandContext(ctx, t.binary, imagePath, "stdout").Output()
	if err != nil {
		return "", fmt.Errorf("tesseract %s: %w", imagePath, err)
	}
	return strings.TrimSpace(string(out)), nil
}
