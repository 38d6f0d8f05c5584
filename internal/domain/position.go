package domain

import (
	"strings"
	"unicode/utf16"
)

// Position is a zero-based line and character offset in a document.
// Character offsets count UTF-16 code units, matching editor hosts.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans from Start (inclusive) to End (exclusive).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// TextEdit describes a replacement of Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// LineLength returns the length of line in UTF-16 code units.
func LineLength(line string) int {
	n := 0
	for _, r := range line {
		n += utf16.RuneLen(r)
	}
	return n
}

// Offset converts a position into a byte offset within text. Positions past
// the end of a line or of the text are clamped.
func Offset(text string, pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	off := 0
	for i := 0; i < pos.Line; i++ {
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			return len(text)
		}
		off += nl + 1
	}

	lineEnd := strings.IndexByte(text[off:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - off
	}
	line := text[off : off+lineEnd]

	units := 0
	for i, r := range line {
		if units >= pos.Character {
			return off + i
		}
		units += utf16.RuneLen(r)
	}
	return off + len(line)
}

// ApplyEdit returns text with the edit applied.
func ApplyEdit(text string, edit TextEdit) string {
	start := Offset(text, edit.Range.Start)
	end := Offset(text, edit.Range.End)
	if end < start {
		end = start
	}
	return text[:start] + edit.NewText + text[end:]
}

// EndPosition returns the position just past the last character of text.
func EndPosition(text string) Position {
	line := strings.Count(text, "\n")
	last := text
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		last = text[i+1:]
	}
	return Position{Line: line, Character: LineLength(last)}
}
