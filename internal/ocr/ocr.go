// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build ocr

// Package ocr recognizes text in page images via the Tesseract engine.
// It is compiled in only with the "ocr" build tag, since gosseract needs
// the Tesseract C libraries installed; without the tag a stub that reports
// ErrNotEnabled is used and the mupdf engine falls back to embedded text.
package ocr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ErrNotEnabled is returned by the stub build; the real build never does.
// Declared here as well so callers can probe for it unconditionally.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine wraps a Tesseract client. It is not safe for concurrent use and
// must be closed to release native resources.
type Engine struct {
	client *gosseract.Client
}

// New creates an OCR engine recognizing the given language (Tesseract
// language code, e.g. "por"; multiple languages joined with "+").
func New(lang string) (*Engine, error) {
	client := gosseract.NewClient()
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			client.Close()
			return nil, fmt.Errorf("setting OCR language %q: %w", lang, err)
		}
	}
	return &Engine{client: client}, nil
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Recognize runs OCR on an encoded image (PNG, JPEG, TIFF) and returns the
// recognized text, trimmed.
func (e *Engine) Recognize(imageData []byte) (string, error) {
	if err := e.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting OCR image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}

	return strings.TrimSpace(text), nil
}
