// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagerange

import (
	"testing"

	"github.com/pdiddy/ocr-pdf/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    types.PageRange
		wantErr bool
	}{
		{
			name: "whole document keyword",
			expr: "all",
			want: types.PageRange{Start: 1, End: types.Unbounded},
		},
		{
			name: "whole document star",
			expr: "*",
			want: types.PageRange{Start: 1, End: types.Unbounded},
		},
		{
			name: "keyword is case-insensitive",
			expr: "  ALL ",
			want: types.PageRange{Start: 1, End: types.Unbounded},
		},
		{
			name: "single page",
			expr: "7",
			want: types.PageRange{Start: 7, End: 7},
		},
		{
			name: "closed range",
			expr: "1-10",
			want: types.PageRange{Start: 1, End: 10},
		},
		{
			name: "open-ended range",
			expr: "5-",
			want: types.PageRange{Start: 5, End: types.Unbounded},
		},
		{
			name: "open-start range defaults to page 1",
			expr: "-10",
			want: types.PageRange{Start: 1, End: 10},
		},
		{
			name: "whitespace around tokens",
			expr: " 3 - 8 ",
			want: types.PageRange{Start: 3, End: 8},
		},
		{
			name: "single-page range",
			expr: "4-4",
			want: types.PageRange{Start: 4, End: 4},
		},
		{
			name:    "zero start",
			expr:    "0-10",
			wantErr: true,
		},
		{
			name:    "negative single page",
			expr:    "-3-5",
			wantErr: true,
		},
		{
			name:    "end before start",
			expr:    "10-5",
			wantErr: true,
		},
		{
			name:    "zero single page",
			expr:    "0",
			wantErr: true,
		},
		{
			name:    "empty expression",
			expr:    "",
			wantErr: true,
		},
		{
			name:    "non-numeric start",
			expr:    "x-5",
			wantErr: true,
		},
		{
			name:    "non-numeric end",
			expr:    "5-y",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.expr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestPageRangeString(t *testing.T) {
	tests := []struct {
		r    types.PageRange
		want string
	}{
		{types.FullRange(), "all"},
		{types.PageRange{Start: 7, End: 7}, "7"},
		{types.PageRange{Start: 5, End: types.Unbounded}, "5-"},
		{types.PageRange{Start: 1, End: 10}, "1-10"},
	}

	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestPageRangeStringRoundTrips(t *testing.T) {
	for _, expr := range []string{"all", "7", "5-", "1-10"} {
		r, err := Parse(expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", expr, err)
		}
		back, err := Parse(r.String())
		if err != nil {
			t.Fatalf("Parse(String(%q)): %v", expr, err)
		}
		if back != r {
			t.Errorf("round trip of %q: got %v, want %v", expr, back, r)
		}
	}
}

func TestPageRangeClamp(t *testing.T) {
	r := types.PageRange{Start: 5, End: types.Unbounded}
	if got := r.Clamp(12); got != (types.PageRange{Start: 5, End: 12}) {
		t.Errorf("Clamp = %v, want 5-12", got)
	}

	r = types.PageRange{Start: 1, End: 10}
	if got := r.Clamp(6); got != (types.PageRange{Start: 1, End: 6}) {
		t.Errorf("Clamp = %v, want 1-6", got)
	}
	if got := r.Clamp(50); got != r {
		t.Errorf("Clamp = %v, want unchanged %v", got, r)
	}
}

func TestPageRangeContains(t *testing.T) {
	r := types.PageRange{Start: 3, End: types.Unbounded}
	for page, want := range map[int]bool{1: false, 2: false, 3: true, 1000: true} {
		if got := r.Contains(page); got != want {
			t.Errorf("Contains(%d) = %v, want %v", page, got, want)
		}
	}
}
