package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEquivalenceLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    models.RawEquivalenceRecord
		wantErr error
	}{
		{
			name: "single codepoint with comment",
			line: "2E85          ; 4EBA #      CJK RADICAL PERSON",
			want: models.RawEquivalenceRecord{SourceStart: 0x2E85, SourceEnd: 0x2E85, TargetStart: 0x4EBA},
		},
		{
			name: "range",
			line: "2E8C..2E8D    ; 5DDB #  [2] CJK RADICAL SMALL ONE..CJK RADICAL SMALL TWO",
			want: models.RawEquivalenceRecord{SourceStart: 0x2E8C, SourceEnd: 0x2E8D, TargetStart: 0x5DDB},
		},
		{
			name: "lowercase without spaces",
			line: "2f00;4e00",
			want: models.RawEquivalenceRecord{SourceStart: 0x2F00, SourceEnd: 0x2F00, TargetStart: 0x4E00},
		},
		{
			name: "extra field after target",
			line: "2E8F ; 5C23 ; extra",
			want: models.RawEquivalenceRecord{SourceStart: 0x2E8F, SourceEnd: 0x2E8F, TargetStart: 0x5C23},
		},
		{name: "blank", line: "   ", wantErr: ErrNoRecord},
		{name: "comment only", line: "# EquivalentUnifiedIdeograph-16.0.0.txt", wantErr: ErrNoRecord},
		{name: "missing separator", line: "2E85 4EBA", wantErr: ErrMalformed},
		{name: "bad source hex", line: "2EZZ ; 4EBA", wantErr: ErrMalformed},
		{name: "bad range end", line: "2E8C.. ; 5DDB", wantErr: ErrMalformed},
		{name: "reversed range", line: "2E8D..2E8C ; 5DDB", wantErr: ErrMalformed},
		{name: "bad target", line: "2E85 ; nope", wantErr: ErrMalformed},
		{name: "empty target", line: "2E85 ;", wantErr: ErrMalformed},
		{name: "target overflows unicode", line: "2E80..2E81 ; 10FFFF", wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEquivalenceLine(tt.line)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error %v should wrap %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_PairwiseNotBlockCopy(t *testing.T) {
	rec := models.RawEquivalenceRecord{SourceStart: 0x2E8C, SourceEnd: 0x2E8D, TargetStart: 0x5DDB}

	got := Expand(rec)

	assert.Equal(t, []models.VariantPair{
		{Variant: 0x2E8C, Target: 0x5DDB},
		{Variant: 0x2E8D, Target: 0x5DDC},
	}, got)
}

func TestExpand_SinglePoint(t *testing.T) {
	rec := models.RawEquivalenceRecord{SourceStart: 0x2E85, SourceEnd: 0x2E85, TargetStart: 0x4EBA}
	assert.Equal(t, []models.VariantPair{{Variant: 0x2E85, Target: 0x4EBA}}, Expand(rec))
}

func TestReadEquivalences(t *testing.T) {
	input := strings.Join([]string{
		"\uFEFF# EquivalentUnifiedIdeograph.txt",
		"",
		"2E81          ; 5382 #      CJK RADICAL CLIFF",
		"2E85          ; 4EBA #      CJK RADICAL PERSON",
		"2E8C..2E8D    ; 5DDB #  [2] CJK RADICAL SMALL ONE..CJK RADICAL SMALL TWO",
		"this line is garbage",
		"2F00          ; 4E00 #      KANGXI RADICAL ONE",
		"2EFF..2F01    ; 9000 #      straddles the block boundary",
		"2E85 4EBA",
		"2EA1\t; 6C35\r",
	}, "\n")

	pairs, stats, err := ReadEquivalences(strings.NewReader(input), nil)
	require.NoError(t, err)

	assert.Equal(t, []models.VariantPair{
		{Variant: 0x2E81, Target: 0x5382},
		{Variant: 0x2E85, Target: 0x4EBA},
		{Variant: 0x2E8C, Target: 0x5DDB},
		{Variant: 0x2E8D, Target: 0x5DDC},
		{Variant: 0x2EFF, Target: 0x9000},
		{Variant: 0x2EA1, Target: 0x6C35},
	}, pairs)

	assert.Equal(t, 10, stats.Lines)
	assert.Equal(t, 6, stats.Records)
	assert.Equal(t, 2, stats.Malformed)
	assert.Equal(t, 6, stats.Pairs)
	assert.Equal(t, 3, stats.Filtered) // 2F00 on its own line, then 2F00 and 2F01 of the straddling range
}

func TestReadEquivalences_MalformedOnly(t *testing.T) {
	pairs, stats, err := ReadEquivalences(strings.NewReader("2E85 4EBA\nfoo;bar\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Equal(t, 2, stats.Malformed)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadEquivalences_ReadError(t *testing.T) {
	_, _, err := ReadEquivalences(failingReader{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}
