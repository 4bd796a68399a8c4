// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives one conversion end to end: resolve the page
// range, invoke the engine, apply capability fallbacks, and write the
// Markdown, plain-text, and searchable-PDF artifacts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ocr-pdf/internal/backend"
	"github.com/pdiddy/ocr-pdf/internal/mdtext"
	"github.com/pdiddy/ocr-pdf/internal/pdfutil"
	"github.com/pdiddy/ocr-pdf/pkg/types"
)

// Status is the outcome of a run.
type Status string

const (
	// StatusDone means artifacts were written.
	StatusDone Status = "converted"

	// StatusSkipped means the Markdown artifact already existed and
	// --force was not given.
	StatusSkipped Status = "skipped"
)

// Result holds the outcome of one conversion run.
type Result struct {
	Status    Status
	Artifacts types.Artifacts
}

// extractRange is swapped out in tests to avoid needing real PDF input.
var extractRange = pdfutil.ExtractRange

// Run converts the PDF at input with the given engine and writes the
// artifacts <stem>.md, <stem>.txt, and <stem>.searchable.pdf under outDir.
// Per-artifact status lines go to w. When the Markdown output already
// exists and force is false the run is skipped.
//
// The plain-text artifact falls back to stripping the Markdown when the
// engine has no native text export; an absent searchable-PDF export is
// reported, never fatal.
func Run(ctx context.Context, conv backend.Converter, input, outDir string, opts types.Options, force bool, w io.Writer) (Result, error) {
	if _, err := os.Stat(input); err != nil {
		return Result{}, fmt.Errorf("input PDF not found: %s", input)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	artifacts := types.Artifacts{
		MarkdownPath: filepath.Join(outDir, stem+".md"),
		TextPath:     filepath.Join(outDir, stem+".txt"),
	}
	pdfPath := filepath.Join(outDir, stem+".searchable.pdf")

	if !force {
		if _, err := os.Stat(artifacts.MarkdownPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already converted, use --force to redo)\n", stem)
			return Result{Status: StatusSkipped, Artifacts: artifacts}, nil
		}
	}

	// Engines convert whole files; a partial page range is applied up
	// front by extracting the selected pages into a scratch copy.
	source := input
	if !opts.Pages.IsFull() {
		trimmed, err := os.CreateTemp("", "ocr-pdf-pages-*.pdf")
		if err != nil {
			return Result{}, fmt.Errorf("creating scratch file: %w", err)
		}
		trimmed.Close()
		defer os.Remove(trimmed.Name())

		resolved, err := extractRange(input, trimmed.Name(), opts.Pages)
		if err != nil {
			return Result{}, err
		}
		opts.Pages = resolved
		source = trimmed.Name()
	}

	doc, err := conv.Convert(ctx, source, opts)
	if err != nil {
		return Result{}, fmt.Errorf("converting %s: %w", input, err)
	}
	if closer, ok := doc.(io.Closer); ok {
		defer closer.Close()
	}

	body := doc.ExportMarkdown()

	content, err := withFrontmatter(input, conv.Name(), opts, body)
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(artifacts.MarkdownPath, []byte(content), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", artifacts.MarkdownPath, err)
	}
	fmt.Fprintf(w, "markdown: %s\n", artifacts.MarkdownPath)

	text, err := exportText(doc, body)
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(artifacts.TextPath, []byte(text), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", artifacts.TextPath, err)
	}
	fmt.Fprintf(w, "text: %s\n", artifacts.TextPath)

	written, err := exportPDF(doc, pdfPath)
	if err != nil {
		return Result{}, err
	}
	if written {
		artifacts.PDFPath = pdfPath
		artifacts.PDFAvailable = true
		fmt.Fprintf(w, "searchable pdf: %s\n", pdfPath)
	} else {
		fmt.Fprintf(w, "searchable pdf: not available from the %s engine\n", conv.Name())
	}

	return Result{Status: StatusDone, Artifacts: artifacts}, nil
}

// exportText prefers the engine's native text export and falls back to
// stripping the Markdown body.
func exportText(doc backend.Document, body string) (string, error) {
	if te, ok := doc.(backend.TextExporter); ok {
		text, err := te.ExportText()
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, backend.ErrUnsupported) {
			return "", fmt.Errorf("exporting text: %w", err)
		}
	}
	return mdtext.ToText(body), nil
}

// exportPDF writes the engine's searchable-PDF export to dst, handling the
// bytes, path, and stream shapes. It reports false when the capability is
// absent or the export is empty.
func exportPDF(doc backend.Document, dst string) (bool, error) {
	pe, ok := doc.(backend.PDFExporter)
	if !ok {
		return false, nil
	}

	export, err := pe.ExportPDF()
	if err != nil {
		if errors.Is(err, backend.ErrUnsupported) {
			return false, nil
		}
		return false, fmt.Errorf("exporting searchable PDF: %w", err)
	}
	if export.Empty() {
		return false, nil
	}

	switch {
	case len(export.Bytes) > 0:
		if err := os.WriteFile(dst, export.Bytes, 0o644); err != nil {
			return false, fmt.Errorf("writing %s: %w", dst, err)
		}
	case export.Path != "":
		if err := copyFile(export.Path, dst); err != nil {
			return false, fmt.Errorf("copying searchable PDF to %s: %w", dst, err)
		}
	default:
		out, err := os.Create(dst)
		if err != nil {
			return false, fmt.Errorf("writing %s: %w", dst, err)
		}
		defer out.Close()
		if _, err := io.Copy(out, export.Reader); err != nil {
			return false, fmt.Errorf("writing %s: %w", dst, err)
		}
	}

	return true, nil
}

// frontmatter is the YAML metadata block prepended to the Markdown artifact.
type frontmatter struct {
	SourcePDF   string `yaml:"source_pdf"`
	Backend     string `yaml:"backend"`
	Lang        string `yaml:"lang"`
	Pages       string `yaml:"pages"`
	OCR         bool   `yaml:"ocr"`
	ConvertedAt string `yaml:"converted_at"`
}

func withFrontmatter(input string, engine types.ConversionBackend, opts types.Options, body string) (string, error) {
	meta, err := yaml.Marshal(frontmatter{
		SourcePDF:   input,
		Backend:     string(engine),
		Lang:        opts.Lang,
		Pages:       opts.Pages.String(),
		OCR:         opts.OCR,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshalling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
