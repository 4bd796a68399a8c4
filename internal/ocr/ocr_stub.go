// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !ocr

// Package ocr recognizes text in page images via the Tesseract engine.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// All operations return ErrNotEnabled. To enable OCR, install Tesseract and
// rebuild with:
//
//	go build -tags ocr
package ocr

import "errors"

// ErrNotEnabled is returned when OCR is requested but support was not
// compiled in.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine is a stub OCR engine; all operations fail with ErrNotEnabled.
type Engine struct{}

// New returns ErrNotEnabled. Callers treat this as "capability absent" and
// fall back to embedded-text extraction.
func New(lang string) (*Engine, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op for the stub engine. Safe to call on a nil engine.
func (e *Engine) Close() error {
	return nil
}

// Recognize returns ErrNotEnabled.
func (e *Engine) Recognize(imageData []byte) (string, error) {
	return "", ErrNotEnabled
}
