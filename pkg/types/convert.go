// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionBackend identifies the document-conversion engine.
type ConversionBackend string

const (
	// BackendAuto picks the first available engine: docling, then mupdf,
	// then pdftext.
	BackendAuto ConversionBackend = "auto"

	// BackendDocling runs the docling container image via docker or podman.
	BackendDocling ConversionBackend = "docling"

	// BackendMuPDF renders pages with MuPDF (go-fitz), optionally OCRing
	// image-only pages with Tesseract.
	BackendMuPDF ConversionBackend = "mupdf"

	// BackendPDFText extracts embedded text with a pure-Go PDF reader.
	BackendPDFText ConversionBackend = "pdftext"
)

// Options configures a single conversion run. All fields beyond Pages have
// useful zero values only by accident; use the convert command defaults.
type Options struct {
	// Backend selects the conversion engine, or BackendAuto to detect one.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Lang is the OCR language code passed to the engine (e.g. "pt").
	Lang string `json:"lang" yaml:"lang"`

	// OCR enables optical character recognition for image-only content.
	OCR bool `json:"ocr" yaml:"ocr"`

	// Pages restricts conversion to an inclusive 1-based page span.
	Pages PageRange `json:"pages" yaml:"pages"`
}

// Artifacts holds the output paths of one conversion run. PDFPath is only
// meaningful when PDFAvailable is true; engines without a searchable-PDF
// export leave it empty.
type Artifacts struct {
	MarkdownPath string `json:"markdown_path" yaml:"markdown_path"`
	TextPath     string `json:"text_path" yaml:"text_path"`
	PDFPath      string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
	PDFAvailable bool   `json:"pdf_available" yaml:"pdf_available"`
}

// RunRecord is one row of the conversion history log.
type RunRecord struct {
	// ID is assigned by the store on insert.
	ID int64 `json:"id" yaml:"id"`

	// Input is the source PDF path or URL as given on the command line.
	Input string `json:"input" yaml:"input"`

	// Backend is the engine that performed the conversion.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Lang and Pages echo the options the run was invoked with.
	Lang  string `json:"lang" yaml:"lang"`
	Pages string `json:"pages" yaml:"pages"`
	OCR   bool   `json:"ocr" yaml:"ocr"`

	// Artifacts records where the outputs were written.
	Artifacts Artifacts `json:"artifacts" yaml:"artifacts"`

	// CreatedAt is the completion time of the run, UTC.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
