// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
)

// Unbounded is the sentinel End value for a page range that extends to the
// last page of the document.
const Unbounded = math.MaxInt

// PageRange is an inclusive, 1-based span of document pages. End may be
// Unbounded when the range is open-ended. The zero value is not valid;
// use FullRange or pagerange.Parse to construct one.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// FullRange covers the whole document.
func FullRange() PageRange {
	return PageRange{Start: 1, End: Unbounded}
}

// IsUnbounded reports whether the range extends to the last page.
func (r PageRange) IsUnbounded() bool {
	return r.End == Unbounded
}

// IsFull reports whether the range covers the whole document.
func (r PageRange) IsFull() bool {
	return r.Start == 1 && r.IsUnbounded()
}

// Contains reports whether the 1-based page number falls inside the range.
func (r PageRange) Contains(page int) bool {
	return page >= r.Start && (r.IsUnbounded() || page <= r.End)
}

// Clamp bounds the range to a document with pageCount pages, resolving an
// Unbounded end to the last page. The start is left alone; callers validate
// it against the document separately.
func (r PageRange) Clamp(pageCount int) PageRange {
	out := r
	if out.IsUnbounded() || out.End > pageCount {
		out.End = pageCount
	}
	return out
}

// String renders the range in the same grammar Parse accepts: "all" for the
// whole document, "N" for a single page, "A-B" or "A-" otherwise.
func (r PageRange) String() string {
	switch {
	case r.IsFull():
		return "all"
	case r.Start == r.End:
		return fmt.Sprintf("%d", r.Start)
	case r.IsUnbounded():
		return fmt.Sprintf("%d-", r.Start)
	default:
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	}
}
