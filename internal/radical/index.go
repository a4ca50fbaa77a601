// Package radical selects one intermediary ideograph per Kangxi radical and
// assembles the cross-reference table.
//
// Data flows strictly forward: variant pairs build an EquivalenceIndex, stroke
// records build a CandidatePool, and a Selector joins both into a models.Table.
// Nothing here performs I/O and every result is a pure function of its inputs.
package radical

import (
	"fmt"
	"slices"
	"strings"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
)

// DuplicatePolicy decides what happens when the same variant is registered
// for the same target more than once.
type DuplicatePolicy int

const (
	// PreserveDuplicates keeps every registration, in file order.
	PreserveDuplicates DuplicatePolicy = iota
	// DedupeVariants keeps only the first registration of each variant per target.
	DedupeVariants
)

// String returns the configuration name of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case DedupeVariants:
		return "dedupe"
	default:
		return "preserve"
	}
}

// ParseDuplicatePolicy accepts "preserve" or "dedupe" (case-insensitive).
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "preserve":
		return PreserveDuplicates, nil
	case "dedupe":
		return DedupeVariants, nil
	default:
		return 0, fmt.Errorf("%w: duplicate policy %q (want preserve or dedupe)", ErrUnknownOption, s)
	}
}

// EquivalenceIndex maps a unified ideograph to the Radical Supplement variants
// equivalent to it. It is read-only after construction.
type EquivalenceIndex struct {
	variants map[models.Codepoint][]models.Codepoint
	pairs    int
}

// NewEquivalenceIndex groups pairs by target, preserving input order within each group.
// Pairs whose variant is outside the Radical Supplement block are ignored.
func NewEquivalenceIndex(pairs []models.VariantPair, dup DuplicatePolicy) *EquivalenceIndex {
	ix := &EquivalenceIndex{variants: make(map[models.Codepoint][]models.Codepoint)}
	for _, p := range pairs {
		if !p.Variant.IsRadicalSupplement() {
			continue
		}
		existing := ix.variants[p.Target]
		if dup == DedupeVariants && slices.Contains(existing, p.Variant) {
			continue
		}
		ix.variants[p.Target] = append(existing, p.Variant)
		ix.pairs++
	}
	return ix
}

// VariantsOf returns the variants registered for target, or nil if none.
// The returned slice is a copy.
func (ix *EquivalenceIndex) VariantsOf(target models.Codepoint) []models.Codepoint {
	return slices.Clone(ix.variants[target])
}

// Has reports whether target has at least one registered variant.
func (ix *EquivalenceIndex) Has(target models.Codepoint) bool {
	return len(ix.variants[target]) > 0
}

// Targets returns every target with a registered variant, ascending.
func (ix *EquivalenceIndex) Targets() []models.Codepoint {
	targets := make([]models.Codepoint, 0, len(ix.variants))
	for t := range ix.variants {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}

// Len returns the number of distinct targets.
func (ix *EquivalenceIndex) Len() int {
	return len(ix.variants)
}

// Pairs returns the number of stored variant registrations.
func (ix *EquivalenceIndex) Pairs() int {
	return ix.pairs
}
