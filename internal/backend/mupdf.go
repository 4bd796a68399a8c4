// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/ocr-pdf/internal/ocr"
	"github.com/pdiddy/ocr-pdf/pkg/types"
)

// MuPDF converts PDFs in-process with the MuPDF renderer (go-fitz). Page
// HTML becomes Markdown via html-to-markdown; plain text comes from the
// renderer's text extraction. When OCR is requested and compiled in, pages
// without embedded text are rasterized and run through Tesseract. The engine
// has no searchable-PDF export.
type MuPDF struct{}

// NewMuPDF creates the MuPDF converter.
func NewMuPDF() *MuPDF {
	return &MuPDF{}
}

// Name implements Converter.
func (m *MuPDF) Name() types.ConversionBackend { return types.BackendMuPDF }

// Check implements Converter. MuPDF is linked into the binary.
func (m *MuPDF) Check() error { return nil }

// Convert renders every page of the PDF at pdfPath to Markdown and text.
func (m *MuPDF) Convert(ctx context.Context, pdfPath string, opts types.Options) (Document, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s with mupdf: %w", pdfPath, err)
	}
	defer doc.Close()

	// An unavailable OCR engine (not compiled in, Tesseract missing) is a
	// capability absence, not a failure: pages fall back to embedded text.
	var eng *ocr.Engine
	if opts.OCR {
		if e, err := ocr.New(tesseractLang(opts.Lang)); err == nil {
			eng = e
			defer eng.Close()
		}
	}

	conv := md.NewConverter("", true, nil)

	var markdown, text strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pageText, err := doc.Text(page)
		if err != nil {
			return nil, fmt.Errorf("extracting text from page %d of %s: %w", page+1, pdfPath, err)
		}
		pageText = strings.TrimSpace(pageText)

		var pageMD string
		if pageText == "" && eng != nil {
			// Image-only page: rasterize and recognize.
			recognized, err := m.recognizePage(doc, eng, page)
			if err != nil {
				return nil, fmt.Errorf("OCR on page %d of %s: %w", page+1, pdfPath, err)
			}
			pageText = recognized
			pageMD = recognized
		} else {
			html, err := doc.HTML(page, false)
			if err != nil {
				return nil, fmt.Errorf("rendering page %d of %s: %w", page+1, pdfPath, err)
			}
			pageMD, err = conv.ConvertString(html)
			if err != nil {
				return nil, fmt.Errorf("converting page %d of %s to Markdown: %w", page+1, pdfPath, err)
			}
		}

		if strings.TrimSpace(pageMD) == "" {
			continue
		}
		if markdown.Len() > 0 {
			markdown.WriteString("\n\n")
		}
		markdown.WriteString(strings.TrimSpace(pageMD))

		if pageText != "" {
			if text.Len() > 0 {
				text.WriteString("\n\n")
			}
			text.WriteString(pageText)
		}
	}

	if markdown.Len() == 0 {
		return nil, fmt.Errorf("mupdf produced empty output for %s", pdfPath)
	}

	return &mupdfDocument{markdown: markdown.String(), text: text.String()}, nil
}

func (m *MuPDF) recognizePage(doc *fitz.Document, eng *ocr.Engine, page int) (string, error) {
	img, err := doc.Image(page)
	if err != nil {
		return "", fmt.Errorf("rasterizing: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding page image: %w", err)
	}

	return eng.Recognize(buf.Bytes())
}

// tesseractLang maps ISO 639-1 codes used on the command line to the
// three-letter codes Tesseract expects. Unknown codes pass through so
// callers can give a Tesseract code directly.
func tesseractLang(lang string) string {
	m := map[string]string{
		"pt": "por",
		"en": "eng",
		"es": "spa",
		"fr": "fra",
		"de": "deu",
		"it": "ita",
		"nl": "nld",
	}
	if code, ok := m[strings.ToLower(lang)]; ok {
		return code
	}
	return lang
}

// mupdfDocument implements Document and TextExporter. There is no
// searchable-PDF capability.
type mupdfDocument struct {
	markdown string
	text     string
}

func (d *mupdfDocument) ExportMarkdown() string { return d.markdown }

func (d *mupdfDocument) ExportText() (string, error) {
	if strings.TrimSpace(d.text) == "" {
		return "", ErrUnsupported
	}
	return d.text, nil
}
