// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagerange parses page-range expressions into types.PageRange.
//
// Three grammars are accepted: "all" or "*" for the whole document, a single
// integer "N" for one page, and "A-B" for an inclusive span where either end
// may be omitted ("A-" runs to the last page, "-B" starts at page 1).
package pagerange

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/ocr-pdf/pkg/types"
)

// Parse converts a page-range expression to a types.PageRange. Page numbers
// are 1-based; an omitted or open end is represented by types.Unbounded.
// Whitespace around tokens is ignored and "all"/"*" are case-insensitive.
func Parse(expr string) (types.PageRange, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return types.PageRange{}, fmt.Errorf("empty page range")
	}

	if low := strings.ToLower(s); low == "all" || low == "*" {
		return types.FullRange(), nil
	}

	start, end := 1, types.Unbounded

	if startStr, endStr, found := strings.Cut(s, "-"); found {
		var err error
		if t := strings.TrimSpace(startStr); t != "" {
			if start, err = parsePage(t); err != nil {
				return types.PageRange{}, err
			}
		}
		if t := strings.TrimSpace(endStr); t != "" {
			if end, err = parsePage(t); err != nil {
				return types.PageRange{}, err
			}
		}
	} else {
		n, err := parsePage(s)
		if err != nil {
			return types.PageRange{}, err
		}
		start, end = n, n
	}

	if start < 1 {
		return types.PageRange{}, fmt.Errorf("page ranges are 1-based (start >= 1), got %d", start)
	}
	if end < start {
		return types.PageRange{}, fmt.Errorf("page range end %d must be >= start %d", end, start)
	}

	return types.PageRange{Start: start, End: end}, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	return n, nil
}
