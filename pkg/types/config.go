// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for fetching remote input documents.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ocr-pdf/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ConversionConfig holds settings for the conversion pipeline.
type ConversionConfig struct {
	// Backend selects the conversion engine: auto, docling, mupdf, or pdftext.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// OutDir is the directory conversion artifacts are written to.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Lang is the default OCR language code.
	Lang string `json:"lang" yaml:"lang"`

	// OCR enables OCR by default.
	OCR bool `json:"ocr" yaml:"ocr"`
}

// HistoryConfig holds settings for the run-history log.
type HistoryConfig struct {
	// Dir is the directory holding the SQLite database file. Defaults to
	// the conversion output directory.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
