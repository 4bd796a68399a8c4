// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/ocr-pdf/pkg/types"
)

// PDFText extracts embedded text with a pure-Go PDF reader (ledongthuc/pdf).
// No rendering, no OCR: scanned pages come out empty. Each page becomes a
// Markdown section. The engine exposes only the Markdown capability, so the
// plain-text artifact is derived by stripping and the searchable PDF is
// reported unavailable.
type PDFText struct{}

// NewPDFText creates the pure-Go text extraction converter.
func NewPDFText() *PDFText {
	return &PDFText{}
}

// Name implements Converter.
func (p *PDFText) Name() types.ConversionBackend { return types.BackendPDFText }

// Check implements Converter.
func (p *PDFText) Check() error { return nil }

// Convert reads the embedded text of every page in the PDF at pdfPath.
func (p *PDFText) Convert(ctx context.Context, pdfPath string, opts types.Options) (Document, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	var b strings.Builder
	for page := 1; page <= r.NumPage(); page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pg := r.Page(page)
		if pg.V.IsNull() {
			continue
		}

		text, err := pg.GetPlainText(nil)
		if err != nil {
			// Pages with unreadable content streams are skipped, not fatal.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		fmt.Fprintf(&b, "## Page %d\n\n%s\n\n", page, text)
	}

	markdown := strings.TrimSpace(b.String())
	if markdown == "" {
		return nil, fmt.Errorf("no embedded text in %s (scanned document? try the docling or mupdf backend with OCR)", pdfPath)
	}

	return &pdftextDocument{markdown: markdown}, nil
}

// pdftextDocument implements only Document.
type pdftextDocument struct {
	markdown string
}

func (d *pdftextDocument) ExportMarkdown() string { return d.markdown }
