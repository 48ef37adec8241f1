// SPDX-License-Identifier: MPL-2.0

// Package managedblock maintains a tool-owned region inside a hand-edited
// text file. The region is delimited by a start and an end marker line; on
// every run it is replaced wholesale, so applying the same block twice is a
// no-op. When the markers are absent, an Anchor decides where the block goes.
package managedblock

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrAnchorNotFound is returned when a file has no markers and the anchor
// used to place a new block does not occur in it either.
var ErrAnchorNotFound = errors.New("anchor not found")

type (
	// Block is a managed region. Lines are written one per line between the
	// markers; Indent prefixes every body line and the end marker. The start
	// marker is not indented because the anchor decides what precedes it.
	Block struct {
		Start  string
		End    string
		Lines  []string
		Indent string
	}

	// Anchor inserts a rendered block into content that has no markers yet.
	Anchor interface {
		Insert(content, rendered string) (string, error)
	}

	// AnchorNotFoundError reports which anchor was missing.
	AnchorNotFoundError struct {
		Anchor string
	}

	appendAtEnd struct{}

	beforeToken struct {
		token  string
		suffix string
	}

	afterPattern struct {
		pattern *regexp.Regexp
		prefix  string
	}
)

// Error implements the error interface.
func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("anchor not found: %s", e.Anchor)
}

// Unwrap returns ErrAnchorNotFound for errors.Is() compatibility.
func (e *AnchorNotFoundError) Unwrap() error { return ErrAnchorNotFound }

// Render returns the block text, from the start marker to the end marker,
// without a trailing newline.
func (b Block) Render() string {
	var sb strings.Builder
	sb.WriteString(b.Start)
	sb.WriteString("\n")
	for _, line := range b.Lines {
		sb.WriteString(b.Indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(b.Indent)
	sb.WriteString(b.End)
	return sb.String()
}

// Apply returns content with the block in place. An existing region (start
// marker followed by an end marker) is replaced, including any indentation
// before the end marker; otherwise anchor inserts the block.
func Apply(content string, block Block, anchor Anchor) (string, error) {
	rendered := block.Render()

	if start, end, ok := locate(content, block.Start, block.End); ok {
		return content[:start] + rendered + content[end:], nil
	}

	return anchor.Insert(content, rendered)
}

// Without returns content with the managed region (markers included) removed.
// Content without a complete region is returned unchanged.
func Without(content, start, end string) string {
	s, e, ok := locate(content, start, end)
	if !ok {
		return content
	}
	return content[:s] + content[e:]
}

// locate returns the byte range [startIdx, endIdx) spanning both markers.
func locate(content, start, end string) (int, int, bool) {
	startIdx := strings.Index(content, start)
	if startIdx < 0 {
		return 0, 0, false
	}
	rel := strings.Index(content[startIdx+len(start):], end)
	if rel < 0 {
		return 0, 0, false
	}
	return startIdx, startIdx + len(start) + rel + len(end), true
}

// AppendAtEnd appends the block after the existing content, separated by a
// blank line, and ends the file with a newline.
func AppendAtEnd() Anchor { return appendAtEnd{} }

func (appendAtEnd) Insert(content, rendered string) (string, error) {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + rendered + "\n", nil
}

// BeforeToken inserts the block immediately before the first occurrence of
// token, followed by suffix (typically a newline plus the token's indent).
func BeforeToken(token, suffix string) Anchor {
	return beforeToken{token: token, suffix: suffix}
}

func (a beforeToken) Insert(content, rendered string) (string, error) {
	idx := strings.Index(content, a.token)
	if idx < 0 {
		return "", &AnchorNotFoundError{Anchor: a.token}
	}
	return content[:idx] + rendered + a.suffix + content[idx:], nil
}

// AfterPattern inserts the block right after the first match of pattern,
// preceded by prefix (typically a newline plus the body indent).
func AfterPattern(pattern *regexp.Regexp, prefix string) Anchor {
	return afterPattern{pattern: pattern, prefix: prefix}
}

func (a afterPattern) Insert(content, rendered string) (string, error) {
	loc := a.pattern.FindStringIndex(content)
	if loc == nil {
		return "", &AnchorNotFoundError{Anchor: a.pattern.String()}
	}
	return content[:loc[1]] + a.prefix + rendered + content[loc[1]:], nil
}
