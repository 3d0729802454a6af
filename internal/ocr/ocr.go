// Package ocr defines the best-effort text-extraction hook the pipeline
// invokes after a successful image upload.
package ocr

import "context"

// Recognizer extracts text from an image file. Failures never affect the
// upload outcome; callers log and move on.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Disabled is the no-op recognizer used when no OCR engine is configured.
// It returns empty text, which callers treat as "nothing to index".
type Disabled struct{}

func (Disabled) Recognize(context.Context, string) (string, error) {
	return "", nil
}
