// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend implements PDF conversion with pluggable engines.
//
// Every engine produces a Document exposing Markdown; plain-text and
// searchable-PDF exports are optional capabilities. Absence is signalled
// two ways: a document type that does not implement the exporter interface
// at all, or an exporter returning ErrUnsupported at runtime (an engine
// version that did not materialize the artifact). Callers fall back in
// both cases instead of failing.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/ocr-pdf/internal/container"
	"github.com/pdiddy/ocr-pdf/pkg/types"
)

// ErrUnsupported is returned by optional exports the engine could not
// provide in this run or version.
var ErrUnsupported = errors.New("export not supported by this engine")

// Document is the result of a conversion. Markdown is the one export every
// engine provides; check for TextExporter and PDFExporter to use the rest.
type Document interface {
	// ExportMarkdown returns the converted document as Markdown.
	ExportMarkdown() string
}

// TextExporter is the optional plain-text capability of a Document.
type TextExporter interface {
	// ExportText returns the document's plain text, or ErrUnsupported.
	ExportText() (string, error)
}

// PDFExporter is the optional searchable-PDF capability of a Document.
type PDFExporter interface {
	// ExportPDF returns the searchable PDF, or ErrUnsupported. A nil
	// export with a nil error also means the artifact is unavailable.
	ExportPDF() (*PDFExport, error)
}

// PDFExport carries a searchable PDF in whichever shape the engine
// produced it: in-memory bytes, a file on disk, or a readable stream.
// Exactly one field is set.
type PDFExport struct {
	Bytes  []byte
	Path   string
	Reader io.Reader
}

// Empty reports whether the export carries no data in any shape.
func (e *PDFExport) Empty() bool {
	return e == nil || (len(e.Bytes) == 0 && e.Path == "" && e.Reader == nil)
}

// Converter transforms a PDF file into a Document. Implementations wrap
// external engines and do no document understanding of their own.
type Converter interface {
	// Name identifies the engine.
	Name() types.ConversionBackend

	// Check reports whether the engine can run on this host (runtime
	// present, image pulled, libraries linked). nil means usable.
	Check() error

	// Convert reads the PDF at pdfPath and produces a Document. The
	// page selection has already been applied to the input file; opts
	// carries OCR settings only.
	Convert(ctx context.Context, pdfPath string, opts types.Options) (Document, error)
}

// Select returns the converter for the named engine. BackendAuto walks the
// preference order docling, mupdf, pdftext and picks the first whose Check
// passes. Named engines are returned even when their Check fails so the
// caller can surface the reason.
func Select(name types.ConversionBackend) (Converter, error) {
	switch name {
	case types.BackendDocling:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, fmt.Errorf("docling engine: %w", err)
		}
		return NewDocling(rt), nil
	case types.BackendMuPDF:
		return NewMuPDF(), nil
	case types.BackendPDFText:
		return NewPDFText(), nil
	case types.BackendAuto, "":
		return selectAuto()
	default:
		return nil, fmt.Errorf("unknown backend %q (want docling, mupdf, pdftext, or auto)", name)
	}
}

func selectAuto() (Converter, error) {
	if rt, err := container.DetectRuntime(); err == nil {
		docling := NewDocling(rt)
		if docling.Check() == nil {
			return docling, nil
		}
	}

	// mupdf is linked into the binary and always passes Check; pdftext
	// stays reachable by name only.
	return NewMuPDF(), nil
}

// All returns one converter per engine, for availability reporting.
// Engines that cannot even be constructed are represented by their error.
func All() []Availability {
	report := []Availability{}

	rt, err := container.DetectRuntime()
	if err != nil {
		report = append(report, Availability{Name: types.BackendDocling, Err: err})
	} else {
		d := NewDocling(rt)
		report = append(report, Availability{Name: types.BackendDocling, Err: d.Check()})
	}

	m := NewMuPDF()
	report = append(report, Availability{Name: types.BackendMuPDF, Err: m.Check()})

	p := NewPDFText()
	report = append(report, Availability{Name: types.BackendPDFText, Err: p.Check()})

	return report
}

// Availability pairs an engine with the result of its host check.
type Availability struct {
	Name types.ConversionBackend
	Err  error
}
