package radical

import (
	"errors"
	"strings"
	"testing"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/raphaelgruber/kangxi-radicals/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexFromLines(t *testing.T, dup DuplicatePolicy, lines ...string) *EquivalenceIndex {
	t.Helper()
	pairs, _, err := parser.ReadEquivalences(strings.NewReader(strings.Join(lines, "\n")), nil)
	require.NoError(t, err)
	return NewEquivalenceIndex(pairs, dup)
}

func TestEquivalenceIndex_RangeIsPairwise(t *testing.T) {
	ix := indexFromLines(t, PreserveDuplicates, "2E8C..2E8D ; 5DDB")

	assert.Equal(t, []models.Codepoint{0x2E8D}, ix.VariantsOf(0x5DDC))
	assert.Equal(t, []models.Codepoint{0x2E8C}, ix.VariantsOf(0x5DDB))
	assert.Equal(t, 2, ix.Len())
}

func TestEquivalenceIndex_GroupsInFileOrder(t *testing.T) {
	ix := indexFromLines(t, PreserveDuplicates,
		"2EA1 ; 6C34",
		"2E85 ; 4EBA",
		"2EA2 ; 6C34",
		"2E84 ; 4E59",
	)

	assert.Equal(t, []models.Codepoint{0x2EA1, 0x2EA2}, ix.VariantsOf(0x6C34))
	assert.Equal(t, []models.Codepoint{0x4E59, 0x4EBA, 0x6C34}, ix.Targets())
	assert.True(t, ix.Has(0x4EBA))
	assert.False(t, ix.Has(0x4E00))
	assert.Empty(t, ix.VariantsOf(0x4E00))
}

func TestEquivalenceIndex_IgnoresNonSupplementVariants(t *testing.T) {
	ix := NewEquivalenceIndex([]models.VariantPair{
		{Variant: 0x2F00, Target: 0x4E00},
		{Variant: 0x2E80, Target: 0x4E36},
	}, PreserveDuplicates)

	assert.False(t, ix.Has(0x4E00))
	assert.Equal(t, []models.Codepoint{0x2E80}, ix.VariantsOf(0x4E36))
	assert.Equal(t, 1, ix.Pairs())
}

func TestEquivalenceIndex_Duplicates(t *testing.T) {
	lines := []string{
		"2E8C..2E8D ; 5DDB",
		"2E8D ; 5DDC",
		"2E8E ; 5DDC",
	}

	t.Run("preserve keeps multiplicity", func(t *testing.T) {
		ix := indexFromLines(t, PreserveDuplicates, lines...)
		assert.Equal(t, []models.Codepoint{0x2E8D, 0x2E8D, 0x2E8E}, ix.VariantsOf(0x5DDC))
		assert.Equal(t, 4, ix.Pairs())
	})

	t.Run("dedupe keeps first occurrence", func(t *testing.T) {
		ix := indexFromLines(t, DedupeVariants, lines...)
		assert.Equal(t, []models.Codepoint{0x2E8D, 0x2E8E}, ix.VariantsOf(0x5DDC))
		assert.Equal(t, 3, ix.Pairs())
	})
}

func TestEquivalenceIndex_VariantsOfReturnsCopy(t *testing.T) {
	ix := indexFromLines(t, PreserveDuplicates, "2E85 ; 4EBA")

	got := ix.VariantsOf(0x4EBA)
	got[0] = 0
	assert.Equal(t, []models.Codepoint{0x2E85}, ix.VariantsOf(0x4EBA))
}

func TestParseDuplicatePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    DuplicatePolicy
		wantErr bool
	}{
		{"", PreserveDuplicates, false},
		{"preserve", PreserveDuplicates, false},
		{"DEDUPE", DedupeVariants, false},
		{"squash", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuplicatePolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownOption))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParseDup(t, got.String()))
		})
	}
}

func mustParseDup(t *testing.T, s string) DuplicatePolicy {
	t.Helper()
	p, err := ParseDuplicatePolicy(s)
	require.NoError(t, err)
	return p
}
