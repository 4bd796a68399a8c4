// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfutil wraps pdfcpu for page counting and page-range extraction.
// Engines without native page selection convert a trimmed copy of the input
// instead of the whole document.
package pdfutil

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/ocr-pdf/pkg/types"
)

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages in %s: %w", path, err)
	}
	return n, nil
}

// ExtractRange writes a copy of src to dst containing only the pages in r.
// The range is validated and clamped against the document's page count; the
// resolved range is returned. An error is reported when the start page lies
// beyond the end of the document.
func ExtractRange(src, dst string, r types.PageRange) (types.PageRange, error) {
	count, err := PageCount(src)
	if err != nil {
		return types.PageRange{}, err
	}
	if r.Start > count {
		return types.PageRange{}, fmt.Errorf("page range %s starts beyond last page %d of %s", r, count, src)
	}

	resolved := r.Clamp(count)

	conf := model.NewDefaultConfiguration()
	selected := []string{fmt.Sprintf("%d-%d", resolved.Start, resolved.End)}
	if err := api.TrimFile(src, dst, selected, conf); err != nil {
		return types.PageRange{}, fmt.Errorf("extracting pages %s from %s: %w", resolved, src, err)
	}

	return resolved, nil
}
