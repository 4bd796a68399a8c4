package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ocr-pdf/internal/backend"
	"github.com/pdiddy/ocr-pdf/internal/fetch"
	"github.com/pdiddy/ocr-pdf/internal/history"
	"github.com/pdiddy/ocr-pdf/internal/pagerange"
	"github.com/pdiddy/ocr-pdf/internal/pipeline"
	"github.com/pdiddy/ocr-pdf/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a PDF to Markdown, text, and searchable PDF",
	Long: `Convert runs one PDF through a conversion engine and writes up to three
artifacts under the output directory: <stem>.md, <stem>.txt, and
<stem>.searchable.pdf. The text artifact falls back to stripped Markdown
when the engine has no native text export; a missing searchable-PDF export
is reported, not fatal.

The input may be a local path or an http(s) URL.`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.String("input", "family-history-book.pdf", "path or URL of the input PDF")
	f.String("out-dir", "output", "output directory for conversion artifacts")
	f.String("lang", "pt", "OCR language code (e.g. pt)")
	f.String("pages", "1-10", "page range (1-based, e.g. 1-10, 5-, or all)")
	f.Bool("ocr", true, "enable OCR")
	f.Bool("no-ocr", false, "disable OCR")
	f.String("backend", "auto", "conversion engine: docling, mupdf, pdftext, or auto")
	f.Bool("force", false, "overwrite existing output artifacts")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	input, _ := flags.GetString("input")
	outDir, _ := flags.GetString("out-dir")
	lang, _ := flags.GetString("lang")
	pagesExpr, _ := flags.GetString("pages")
	ocrOn, _ := flags.GetBool("ocr")
	noOCR, _ := flags.GetBool("no-ocr")
	engine, _ := flags.GetString("backend")
	force, _ := flags.GetBool("force")

	// Config file values back the flag defaults.
	if !flags.Changed("backend") {
		if v := viper.GetString("conversion.backend"); v != "" {
			engine = v
		}
	}
	if !flags.Changed("out-dir") {
		if v := viper.GetString("conversion.out_dir"); v != "" {
			outDir = v
		}
	}
	if !flags.Changed("lang") {
		if v := viper.GetString("conversion.lang"); v != "" {
			lang = v
		}
	}

	pages, err := pagerange.Parse(pagesExpr)
	if err != nil {
		return fmt.Errorf("invalid --pages: %w", err)
	}

	opts := types.Options{
		Backend: types.ConversionBackend(engine),
		Lang:    lang,
		OCR:     ocrOn && !noOCR,
		Pages:   pages,
	}

	conv, err := backend.Select(opts.Backend)
	if err != nil {
		return err
	}
	opts.Backend = conv.Name()

	localInput := input
	if fetch.IsURL(input) {
		cfg := types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: "ocr-pdf/" + version,
		}
		if cfg.Timeout == 0 {
			cfg.Timeout = 5 * time.Minute
		}
		client := &http.Client{Timeout: cfg.Timeout}
		downloaded, err := fetch.Download(cmd.Context(), client, input, cfg)
		if err != nil {
			return err
		}
		defer os.RemoveAll(filepath.Dir(downloaded))
		localInput = downloaded
	}

	fmt.Fprintf(os.Stderr, "Converting %s with the %s engine (pages %s)\n", input, conv.Name(), pages)

	res, err := pipeline.Run(cmd.Context(), conv, localInput, outDir, opts, force, os.Stdout)
	if err != nil {
		return err
	}

	if res.Status == pipeline.StatusDone {
		if err := recordRun(cmd.Context(), outDir, input, opts, res.Artifacts); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record run history: %v\n", err)
		}
	}

	return nil
}

func recordRun(ctx context.Context, outDir, input string, opts types.Options, artifacts types.Artifacts) error {
	store, err := history.Open(historyDir(outDir))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, types.RunRecord{
		Input:     input,
		Backend:   opts.Backend,
		Lang:      opts.Lang,
		Pages:     opts.Pages.String(),
		OCR:       opts.OCR,
		Artifacts: artifacts,
	})
	return err
}

// historyDir resolves where the run log lives: the configured history
// directory, or the conversion output directory by default.
func historyDir(outDir string) string {
	if v := viper.GetString("history.dir"); v != "" {
		return v
	}
	return outDir
}
