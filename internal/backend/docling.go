// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/ocr-pdf/internal/container"
	"github.com/pdiddy/ocr-pdf/pkg/types"
)

const (
	imageDocling = "docling:latest"
	workMount    = "/work"
	sourceName   = "source"
)

// Docling converts PDFs by running the docling container image through a
// container.Runtime (docker or podman) injected at construction time. The
// engine exports Markdown, plain text, and a searchable PDF into a mounted
// scratch directory; whichever artifacts materialize become the Document's
// capabilities.
type Docling struct {
	runtime container.Runtime
	image   string

	// probed caches the result of the one-time --help capability probe.
	probed      bool
	ocrLangFlag bool
}

// NewDocling creates a docling converter using the given container runtime.
func NewDocling(rt container.Runtime) *Docling {
	return &Docling{runtime: rt, image: imageDocling}
}

// Name implements Converter.
func (d *Docling) Name() types.ConversionBackend { return types.BackendDocling }

// Check verifies the docling image exists in the local runtime.
func (d *Docling) Check() error {
	if err := d.runtime.ImageExists(d.image); err != nil {
		return fmt.Errorf("docling image not available in %s: %w", d.runtime.Name(), err)
	}
	return nil
}

// probe asks the installed image for its help text once and records whether
// the OCR-language flag exists. Installed docling versions differ here; a
// failed probe or a missing flag means Convert silently falls back to the
// engine's default OCR configuration.
func (d *Docling) probe(ctx context.Context) {
	if d.probed {
		return
	}
	d.probed = true

	var help bytes.Buffer
	if err := d.runtime.Run(ctx, d.image, []string{"--help"}, nil, &help); err != nil {
		return
	}
	d.ocrLangFlag = strings.Contains(help.String(), "--ocr-lang")
}

// Convert copies the PDF into a scratch directory, mounts it into the
// docling container, and collects the artifacts the engine produced. The
// returned Document owns the scratch directory; Close releases it.
func (d *Docling) Convert(ctx context.Context, pdfPath string, opts types.Options) (Document, error) {
	scratch, err := os.MkdirTemp("", "ocr-pdf-docling-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	doc, err := d.convertInto(ctx, scratch, pdfPath, opts)
	if err != nil {
		os.RemoveAll(scratch)
		return nil, err
	}
	return doc, nil
}

func (d *Docling) convertInto(ctx context.Context, scratch, pdfPath string, opts types.Options) (*doclingDocument, error) {
	inDir := filepath.Join(scratch, "in")
	outDir := filepath.Join(scratch, "out")
	for _, dir := range []string{inDir, outDir} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return nil, fmt.Errorf("preparing scratch directory: %w", err)
		}
	}

	if err := copyFile(pdfPath, filepath.Join(inDir, sourceName+".pdf")); err != nil {
		return nil, fmt.Errorf("staging PDF %s: %w", pdfPath, err)
	}

	d.probe(ctx)

	args := []string{
		workMount + "/in/" + sourceName + ".pdf",
		"--to", "md",
		"--to", "text",
		"--to", "pdf",
		"--output", workMount + "/out",
	}
	if opts.OCR && d.ocrLangFlag {
		args = append(args, "--ocr-lang", opts.Lang)
	}

	var engineLog bytes.Buffer
	if err := d.runtime.RunMounted(ctx, d.image, scratch, workMount, args, io.Discard, &engineLog); err != nil {
		return nil, fmt.Errorf("converting %s with docling: %w (engine output: %s)",
			pdfPath, err, strings.TrimSpace(engineLog.String()))
	}

	markdown, err := os.ReadFile(filepath.Join(outDir, sourceName+".md"))
	if err != nil {
		return nil, fmt.Errorf("docling produced no Markdown for %s: %w", pdfPath, err)
	}
	if len(bytes.TrimSpace(markdown)) == 0 {
		return nil, fmt.Errorf("docling produced empty output for %s", pdfPath)
	}

	doc := &doclingDocument{
		scratch:  scratch,
		markdown: string(markdown),
	}

	if text, err := os.ReadFile(filepath.Join(outDir, sourceName+".txt")); err == nil {
		doc.text = string(text)
		doc.hasText = true
	}

	pdfOut := filepath.Join(outDir, sourceName+".pdf")
	if _, err := os.Stat(pdfOut); err == nil {
		doc.pdfPath = pdfOut
	}

	return doc, nil
}

// doclingDocument implements Document, TextExporter, and PDFExporter over
// the artifacts of one docling run. Exports the run did not produce return
// ErrUnsupported. It holds the scratch directory the searchable PDF lives
// in until Close.
type doclingDocument struct {
	scratch  string
	markdown string
	text     string
	hasText  bool
	pdfPath  string
}

func (d *doclingDocument) ExportMarkdown() string { return d.markdown }

func (d *doclingDocument) ExportText() (string, error) {
	if !d.hasText {
		return "", ErrUnsupported
	}
	return d.text, nil
}

func (d *doclingDocument) ExportPDF() (*PDFExport, error) {
	if d.pdfPath == "" {
		return nil, ErrUnsupported
	}
	return &PDFExport{Path: d.pdfPath}, nil
}

// Close removes the scratch directory, invalidating any PDFExport path
// handed out earlier.
func (d *doclingDocument) Close() error {
	return os.RemoveAll(d.scratch)
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
