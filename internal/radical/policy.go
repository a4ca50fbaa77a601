package radical

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
)

// Policy picks the intermediary ideograph for one radical.
// candidates is non-empty and sorted ascending; a Policy must return one of them
// and must not depend on anything but its arguments.
type Policy func(candidates []models.Codepoint, index *EquivalenceIndex) models.Codepoint

// Policy names accepted by PolicyByName.
const (
	PolicyEquivalenceFirst = "equivalence-first"
	PolicySmallest         = "smallest"
	PolicyUnifiedFirst     = "unified-first"
)

var policies = map[string]Policy{
	PolicyEquivalenceFirst: EquivalenceFirst,
	PolicySmallest:         Smallest,
	PolicyUnifiedFirst:     UnifiedFirst,
}

// DefaultPolicy is the authoritative tie-break rule.
const DefaultPolicy = PolicyEquivalenceFirst

// PolicyByName looks up a registered policy.
func PolicyByName(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultPolicy
	}
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("%w: policy %q (want one of %s)", ErrUnknownOption, name, strings.Join(PolicyNames(), ", "))
	}
	return p, nil
}

// PolicyNames returns the registered policy names, sorted.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EquivalenceFirst prefers candidates that are EquivalenceIndex targets, then
// the smallest codepoint within the preferred group.
func EquivalenceFirst(candidates []models.Codepoint, index *EquivalenceIndex) models.Codepoint {
	return smallestOf(preferred(candidates, index.Has))
}

// Smallest picks the smallest codepoint and ignores the index.
func Smallest(candidates []models.Codepoint, _ *EquivalenceIndex) models.Codepoint {
	return smallestOf(candidates)
}

// UnifiedFirst restricts to the CJK Unified Ideographs and Extension A ranges
// when any candidate is there, then applies EquivalenceFirst. The range is
// models.Codepoint.IsUnified: Extension A (U+3400..U+4DBF) counts as unified,
// Extension B and later planes do not. This is not a "codepoint >= U+4E00" cut.
func UnifiedFirst(candidates []models.Codepoint, index *EquivalenceIndex) models.Codepoint {
	return EquivalenceFirst(preferred(candidates, models.Codepoint.IsUnified), index)
}

// preferred returns the candidates satisfying keep, or all candidates when none do.
func preferred(candidates []models.Codepoint, keep func(models.Codepoint) bool) []models.Codepoint {
	var out []models.Codepoint
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}

func smallestOf(cps []models.Codepoint) models.Codepoint {
	return slices.Min(cps)
}
