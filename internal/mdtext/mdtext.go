// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdtext derives plain text from Markdown by stripping syntax.
// It is the fallback used when a conversion engine has no native plain-text
// export; it is deliberately lossy and keeps only readable content.
package mdtext

import (
	"regexp"
	"strings"
)

var (
	fencedBlock = regexp.MustCompile("(?s)```.*?```")
	inlineCode  = regexp.MustCompile("`([^`]+)`")
	heading     = regexp.MustCompile(`(?m)^#+\s*`)
	emphasis    = regexp.MustCompile(`[*_]{1,2}`)
	link        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// ToText strips Markdown syntax from md: fenced code blocks are removed
// entirely, inline code keeps its content, heading and emphasis markers are
// dropped, and links are reduced to their text. The result is trimmed of
// leading and trailing whitespace.
func ToText(md string) string {
	text := fencedBlock.ReplaceAllString(md, "")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = heading.ReplaceAllString(text, "")
	text = emphasis.ReplaceAllString(text, "")
	text = link.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
