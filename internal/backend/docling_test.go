// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pdiddy/ocr-pdf/pkg/types"
)

// fakeRuntime implements container.Runtime for tests. Run serves canned
// help text; RunMounted writes the configured artifacts into hostDir/out
// and records the arguments it was invoked with.
type fakeRuntime struct {
	helpText  string
	helpErr   error
	artifacts map[string]string // filename under out/ -> content
	runErr    error
	imageErr  error

	mountedArgs []string
}

func (f *fakeRuntime) Name() string    { return "docker" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(image string) error { return f.imageErr }

func (f *fakeRuntime) Run(ctx context.Context, image string, args []string, stdin io.Reader, stdout io.Writer) error {
	if f.helpErr != nil {
		return f.helpErr
	}
	_, _ = io.WriteString(stdout, f.helpText)
	return nil
}

func (f *fakeRuntime) RunMounted(ctx context.Context, image, hostDir, containerDir string, args []string, stdout, stderr io.Writer) error {
	f.mountedArgs = args
	if f.runErr != nil {
		return f.runErr
	}
	for name, content := range f.artifacts {
		if err := os.WriteFile(filepath.Join(hostDir, "out", name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func stagePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDoclingConvertFullArtifacts(t *testing.T) {
	rt := &fakeRuntime{
		helpText: "usage: docling [--ocr-lang LANG]",
		artifacts: map[string]string{
			"source.md":  "# Book\n\nBody.",
			"source.txt": "Book\n\nBody.",
			"source.pdf": "%PDF-1.7 searchable",
		},
	}
	d := NewDocling(rt)

	doc, err := d.Convert(context.Background(), stagePDF(t), types.Options{OCR: true, Lang: "pt"})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	defer doc.(io.Closer).Close()

	if got := doc.ExportMarkdown(); got != "# Book\n\nBody." {
		t.Errorf("markdown = %q", got)
	}

	text, err := doc.(TextExporter).ExportText()
	if err != nil {
		t.Fatalf("ExportText: %v", err)
	}
	if text != "Book\n\nBody." {
		t.Errorf("text = %q", text)
	}

	export, err := doc.(PDFExporter).ExportPDF()
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if export.Empty() || export.Path == "" {
		t.Fatalf("expected path-shaped export, got %+v", export)
	}
	data, err := os.ReadFile(export.Path)
	if err != nil {
		t.Fatalf("reading exported PDF: %v", err)
	}
	if string(data) != "%PDF-1.7 searchable" {
		t.Errorf("exported PDF content = %q", data)
	}
}

func TestDoclingConvertMarkdownOnly(t *testing.T) {
	rt := &fakeRuntime{
		artifacts: map[string]string{"source.md": "# Only Markdown"},
	}
	d := NewDocling(rt)

	doc, err := d.Convert(context.Background(), stagePDF(t), types.Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	defer doc.(io.Closer).Close()

	if _, err := doc.(TextExporter).ExportText(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ExportText error = %v, want ErrUnsupported", err)
	}
	if _, err := doc.(PDFExporter).ExportPDF(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ExportPDF error = %v, want ErrUnsupported", err)
	}
}

func TestDoclingOCRFlagFollowsProbe(t *testing.T) {
	tests := []struct {
		name     string
		helpText string
		helpErr  error
		ocr      bool
		wantFlag bool
	}{
		{
			name:     "flag present and OCR on",
			helpText: "options: --ocr-lang LANG --output DIR",
			ocr:      true,
			wantFlag: true,
		},
		{
			name:     "flag absent falls back silently",
			helpText: "options: --output DIR",
			ocr:      true,
		},
		{
			name:    "probe failure falls back silently",
			helpErr: errors.New("image has no --help"),
			ocr:     true,
		},
		{
			name:     "OCR disabled never passes the flag",
			helpText: "options: --ocr-lang LANG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &fakeRuntime{
				helpText:  tt.helpText,
				helpErr:   tt.helpErr,
				artifacts: map[string]string{"source.md": "# x"},
			}
			d := NewDocling(rt)

			doc, err := d.Convert(context.Background(), stagePDF(t), types.Options{OCR: tt.ocr, Lang: "pt"})
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			doc.(io.Closer).Close()

			gotFlag := slices.Contains(rt.mountedArgs, "--ocr-lang")
			if gotFlag != tt.wantFlag {
				t.Errorf("args %v: --ocr-lang present = %v, want %v", rt.mountedArgs, gotFlag, tt.wantFlag)
			}
			if tt.wantFlag && !slices.Contains(rt.mountedArgs, "pt") {
				t.Errorf("args %v should carry the language code", rt.mountedArgs)
			}
		})
	}
}

func TestDoclingEmptyOutputFails(t *testing.T) {
	tests := []struct {
		name      string
		artifacts map[string]string
	}{
		{name: "no markdown artifact"},
		{name: "blank markdown artifact", artifacts: map[string]string{"source.md": "  \n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocling(&fakeRuntime{artifacts: tt.artifacts})
			if _, err := d.Convert(context.Background(), stagePDF(t), types.Options{}); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestDoclingRunFailure(t *testing.T) {
	d := NewDocling(&fakeRuntime{runErr: errors.New("container exited with code 1")})
	_, err := d.Convert(context.Background(), stagePDF(t), types.Options{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "docling") {
		t.Errorf("error should mention the engine, got: %v", err)
	}
}

func TestDoclingCheck(t *testing.T) {
	d := NewDocling(&fakeRuntime{imageErr: errors.New("no such image")})
	if err := d.Check(); err == nil || !strings.Contains(err.Error(), "docling image not available") {
		t.Errorf("Check = %v, want image-not-available error", err)
	}

	d = NewDocling(&fakeRuntime{})
	if err := d.Check(); err != nil {
		t.Errorf("Check = %v, want nil", err)
	}
}

func TestSelectNamedEngines(t *testing.T) {
	for _, name := range []types.ConversionBackend{types.BackendMuPDF, types.BackendPDFText} {
		c, err := Select(name)
		if err != nil {
			t.Fatalf("Select(%s): %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("Select(%s).Name() = %s", name, c.Name())
		}
	}

	if _, err := Select("grobid"); err == nil {
		t.Error("Select of unknown backend should fail")
	}
}
