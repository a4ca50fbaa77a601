package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCodepoint(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Codepoint
		wantErr bool
	}{
		{"bare hex", "6C34", 0x6C34, false},
		{"lowercase", "2e8c", 0x2E8C, false},
		{"prefixed", "U+5DDB", 0x5DDB, false},
		{"padded", "  4EBA ", 0x4EBA, false},
		{"supplementary plane", "20000", 0x20000, false},
		{"empty", "", 0, true},
		{"prefix only", "U+", 0, true},
		{"not hex", "XYZ", 0, true},
		{"beyond unicode", "110000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCodepoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodepointFormatting(t *testing.T) {
	assert.Equal(t, "U+6C34", Codepoint(0x6C34).String())
	assert.Equal(t, "U+20000", Codepoint(0x20000).String())
	assert.Equal(t, "U+00AB", Codepoint(0xAB).String())
	assert.Equal(t, "水", Codepoint(0x6C34).Char())

	cps := []Codepoint{0x2E8C, 0x2E8D}
	assert.Equal(t, "U+2E8C,U+2E8D", FormatCodepoints(cps, ","))
	assert.Equal(t, "⺌⺍", Chars(cps))
	assert.Equal(t, "", FormatCodepoints(nil, ","))
}

func TestBlocks(t *testing.T) {
	assert.True(t, Codepoint(0x2E80).IsRadicalSupplement())
	assert.True(t, Codepoint(0x2EFF).IsRadicalSupplement())
	assert.False(t, Codepoint(0x2F00).IsRadicalSupplement())
	assert.False(t, Codepoint(0x2E7F).IsRadicalSupplement())

	assert.True(t, Codepoint(0x4E00).IsUnified())
	assert.True(t, Codepoint(0x3400).IsUnified())
	assert.False(t, Codepoint(0x2F00).IsUnified())
	assert.False(t, Codepoint(0x20000).IsUnified())
}

func TestKangxiChar(t *testing.T) {
	assert.Equal(t, Codepoint(0x2F00), KangxiChar(1))
	assert.Equal(t, Codepoint(0x2F54), KangxiChar(85))
	assert.Equal(t, KangxiLast, KangxiChar(LastRadical))
	assert.Equal(t, 214, RadicalCount)

	assert.False(t, ValidRadical(0))
	assert.True(t, ValidRadical(1))
	assert.True(t, ValidRadical(214))
	assert.False(t, ValidRadical(215))
}
