package radical

import (
	"slices"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
)

// CandidatePool holds, per radical number, every ideograph whose stroke record
// declares zero residual strokes under that radical.
type CandidatePool struct {
	candidates map[int][]models.Codepoint
	outOfRange int
}

// NewCandidatePool keeps zero-residual records for radicals 1..214.
// Candidates are stored as a sorted set, so input order never matters.
func NewCandidatePool(records []models.StrokeRecord) *CandidatePool {
	p := &CandidatePool{candidates: make(map[int][]models.Codepoint)}
	for _, r := range records {
		if r.ResidualStrokes != 0 {
			continue
		}
		if !models.ValidRadical(r.RadicalNumber) {
			p.outOfRange++
			continue
		}
		p.candidates[r.RadicalNumber] = append(p.candidates[r.RadicalNumber], r.Ideograph)
	}
	for n, cps := range p.candidates {
		slices.Sort(cps)
		p.candidates[n] = slices.Compact(cps)
	}
	return p
}

// CandidatesFor returns the candidates for radical n in ascending order, or nil.
// The returned slice is a copy.
func (p *CandidatePool) CandidatesFor(n int) []models.Codepoint {
	return slices.Clone(p.candidates[n])
}

// Radicals returns the number of radicals with at least one candidate.
func (p *CandidatePool) Radicals() int {
	return len(p.candidates)
}

// OutOfRange returns how many zero-residual records named a non-standard radical number.
func (p *CandidatePool) OutOfRange() int {
	return p.outOfRange
}
