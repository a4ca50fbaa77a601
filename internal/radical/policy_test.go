package radical

import (
	"errors"
	"testing"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicies(t *testing.T) {
	index := NewEquivalenceIndex([]models.VariantPair{
		{Variant: 0x2E8F, Target: 0x5C23},
		{Variant: 0x2E92, Target: 0x20000},
	}, PreserveDuplicates)

	tests := []struct {
		name       string
		candidates []models.Codepoint
		want       map[string]models.Codepoint
	}{
		{
			name:       "single candidate",
			candidates: []models.Codepoint{0x4E00},
			want: map[string]models.Codepoint{
				PolicyEquivalenceFirst: 0x4E00,
				PolicySmallest:         0x4E00,
				PolicyUnifiedFirst:     0x4E00,
			},
		},
		{
			name:       "target is not smallest",
			candidates: []models.Codepoint{0x5C0F, 0x5C23},
			want: map[string]models.Codepoint{
				PolicyEquivalenceFirst: 0x5C23,
				PolicySmallest:         0x5C0F,
				PolicyUnifiedFirst:     0x5C23,
			},
		},
		{
			name:       "only target is outside unified ranges",
			candidates: []models.Codepoint{0x4E28, 0x20000},
			want: map[string]models.Codepoint{
				PolicyEquivalenceFirst: 0x20000,
				PolicySmallest:         0x4E28,
				PolicyUnifiedFirst:     0x4E28,
			},
		},
		{
			name:       "extension A preferred over extension B target",
			candidates: []models.Codepoint{0x3402, 0x20000},
			want: map[string]models.Codepoint{
				PolicyEquivalenceFirst: 0x20000,
				PolicySmallest:         0x3402,
				PolicyUnifiedFirst:     0x3402,
			},
		},
		{
			name:       "no unified candidate falls back to all",
			candidates: []models.Codepoint{0x2EA5, 0xF900},
			want: map[string]models.Codepoint{
				PolicyEquivalenceFirst: 0x2EA5,
				PolicySmallest:         0x2EA5,
				PolicyUnifiedFirst:     0x2EA5,
			},
		},
	}

	for _, tt := range tests {
		for name, want := range tt.want {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				policy, err := PolicyByName(name)
				require.NoError(t, err)
				assert.Equal(t, want, policy(tt.candidates, index))
			})
		}
	}
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = PolicyByName(" Smallest ")
	require.NoError(t, err)

	_, err = PolicyByName("first-seen")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOption))
	assert.Contains(t, err.Error(), PolicyEquivalenceFirst)

	assert.Equal(t, []string{PolicyEquivalenceFirst, PolicySmallest, PolicyUnifiedFirst}, PolicyNames())
}
