package radical

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
)

// SupplementCandidates decides whether a Radical Supplement codepoint may
// stand as the intermediary ideograph for its own radical.
type SupplementCandidates int

const (
	// ExcludeSupplement drops Radical Supplement codepoints from every candidate set.
	ExcludeSupplement SupplementCandidates = iota
	// KeepSupplement leaves them in; the chosen Policy then decides.
	KeepSupplement
)

// String returns the configuration name of the mode.
func (s SupplementCandidates) String() string {
	if s == KeepSupplement {
		return "keep"
	}
	return "exclude"
}

// ParseSupplementCandidates accepts "exclude" or "keep" (case-insensitive).
func ParseSupplementCandidates(s string) (SupplementCandidates, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exclude":
		return ExcludeSupplement, nil
	case "keep":
		return KeepSupplement, nil
	default:
		return 0, fmt.Errorf("%w: supplement candidates %q (want exclude or keep)", ErrUnknownOption, s)
	}
}

// Options configure a Selector. The zero value uses EquivalenceFirst and
// excludes Radical Supplement candidates.
type Options struct {
	Policy     Policy
	Supplement SupplementCandidates
}

// Stats summarize one table build.
type Stats struct {
	Resolved   int
	Unresolved int
	// Contested counts radicals with more than one candidate.
	Contested int
	// Ambiguous counts radicals where several candidates share the highest
	// priority (index targets, or all candidates when none is a target).
	Ambiguous int
	// SupplementExcluded counts candidates dropped by ExcludeSupplement.
	SupplementExcluded int
	// SupplementSelected counts radicals whose intermediary is a Radical Supplement codepoint.
	SupplementSelected int
	// UnlinkedTargets lists index targets no radical selected; their variants
	// appear nowhere in the table.
	UnlinkedTargets []models.Codepoint
}

// Selector joins a CandidatePool and an EquivalenceIndex into table entries.
type Selector struct {
	pool  *CandidatePool
	index *EquivalenceIndex
	opts  Options
}

// NewSelector creates a selector over fully built inputs.
func NewSelector(pool *CandidatePool, index *EquivalenceIndex, opts Options) *Selector {
	if opts.Policy == nil {
		opts.Policy = EquivalenceFirst
	}
	return &Selector{pool: pool, index: index, opts: opts}
}

// Select builds the entry for radical n. An empty candidate set yields an
// unresolved entry with no variants; it is never an error.
func (s *Selector) Select(n int) models.KangxiRadicalEntry {
	entry, _ := s.selectOne(n)
	return entry
}

// Table builds all 214 entries in radical order.
func (s *Selector) Table() (models.Table, Stats) {
	table := make(models.Table, 0, models.RadicalCount)
	var stats Stats
	for n := models.FirstRadical; n <= models.LastRadical; n++ {
		entry, d := s.selectOne(n)
		table = append(table, entry)

		stats.SupplementExcluded += d.excluded
		if len(d.candidates) > 1 {
			stats.Contested++
		}
		if len(preferred(d.candidates, s.index.Has)) > 1 {
			stats.Ambiguous++
		}
		if !entry.Resolved() {
			stats.Unresolved++
			continue
		}
		stats.Resolved++
		if entry.Intermediary.IsRadicalSupplement() {
			stats.SupplementSelected++
		}
	}
	stats.UnlinkedTargets = s.unlinkedTargets(table)
	return table, stats
}

func (s *Selector) unlinkedTargets(table models.Table) []models.Codepoint {
	selected := make(map[models.Codepoint]bool, len(table))
	for _, e := range table {
		if e.Resolved() {
			selected[*e.Intermediary] = true
		}
	}
	var unlinked []models.Codepoint
	for _, t := range s.index.Targets() {
		if !selected[t] {
			unlinked = append(unlinked, t)
		}
	}
	return unlinked
}

type decision struct {
	candidates []models.Codepoint
	excluded   int
}

func (s *Selector) selectOne(n int) (models.KangxiRadicalEntry, decision) {
	entry := models.KangxiRadicalEntry{
		Number:     n,
		KangxiChar: models.KangxiChar(n),
	}

	candidates := s.pool.CandidatesFor(n)
	var d decision
	if s.opts.Supplement == ExcludeSupplement {
		kept := candidates[:0]
		for _, c := range candidates {
			if c.IsRadicalSupplement() {
				d.excluded++
				continue
			}
			kept = append(kept, c)
		}
		candidates = kept
	}
	d.candidates = candidates

	if len(candidates) == 0 {
		return entry, d
	}

	selected := s.opts.Policy(candidates, s.index)
	entry.Intermediary = &selected
	entry.Variants = s.index.VariantsOf(selected)
	return entry, d
}
