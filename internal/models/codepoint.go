// Package models defines the data structures shared by the radical table pipeline.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Codepoint is a Unicode scalar value.
type Codepoint rune

// Block boundaries used by the pipeline (inclusive).
const (
	MaxCodepoint Codepoint = 0x10FFFF

	// CJK Radicals Supplement
	SupplementFirst Codepoint = 0x2E80
	SupplementLast  Codepoint = 0x2EFF

	// Kangxi Radicals
	KangxiFirst Codepoint = 0x2F00
	KangxiLast  Codepoint = 0x2FD5

	// CJK Unified Ideographs and Extension A
	UnifiedFirst     Codepoint = 0x4E00
	UnifiedLast      Codepoint = 0x9FFF
	UnifiedExtAFirst Codepoint = 0x3400
	UnifiedExtALast  Codepoint = 0x4DBF
)

// String formats the codepoint as "U+XXXX".
func (c Codepoint) String() string {
	return fmt.Sprintf("U+%04X", uint32(c))
}

// Char returns the codepoint as a one-character string.
func (c Codepoint) Char() string {
	return string(rune(c))
}

// IsRadicalSupplement reports whether c lies in the CJK Radicals Supplement block.
func (c Codepoint) IsRadicalSupplement() bool {
	return c >= SupplementFirst && c <= SupplementLast
}

// IsUnified reports whether c lies in the CJK Unified Ideographs block or Extension A.
func (c Codepoint) IsUnified() bool {
	return (c >= UnifiedFirst && c <= UnifiedLast) ||
		(c >= UnifiedExtAFirst && c <= UnifiedExtALast)
}

// ParseCodepoint parses a hexadecimal codepoint, with or without a "U+" prefix.
func ParseCodepoint(s string) (Codepoint, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "U+"), "u+")
	if s == "" {
		return 0, fmt.Errorf("empty codepoint")
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse codepoint %q: %w", s, err)
	}
	if Codepoint(v) > MaxCodepoint {
		return 0, fmt.Errorf("codepoint %q out of range", s)
	}
	return Codepoint(v), nil
}

// FormatCodepoints joins codepoints as "U+XXXX" separated by sep.
func FormatCodepoints(cps []Codepoint, sep string) string {
	parts := make([]string, len(cps))
	for i, c := range cps {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

// Chars concatenates the characters of cps.
func Chars(cps []Codepoint) string {
	var b strings.Builder
	for _, c := range cps {
		b.WriteRune(rune(c))
	}
	return b.String()
}
