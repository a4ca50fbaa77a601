package models

// Radical numbering bounds for the 214 Kangxi radicals.
const (
	FirstRadical = 1
	LastRadical  = 214
	RadicalCount = LastRadical - FirstRadical + 1
)

// ValidRadical reports whether n is a standard Kangxi radical number.
func ValidRadical(n int) bool {
	return n >= FirstRadical && n <= LastRadical
}

// KangxiChar returns the Kangxi Radicals block codepoint for radical n.
// The result is only meaningful when ValidRadical(n).
func KangxiChar(n int) Codepoint {
	return KangxiFirst + Codepoint(n-FirstRadical)
}

// RawEquivalenceRecord is one parsed line of the equivalence source:
// SourceEnd-SourceStart+1 codepoints mapped one-to-one onto targets from TargetStart.
type RawEquivalenceRecord struct {
	SourceStart Codepoint
	SourceEnd   Codepoint
	TargetStart Codepoint
}

// Len returns the number of source codepoints covered by the record.
func (r RawEquivalenceRecord) Len() int {
	return int(r.SourceEnd-r.SourceStart) + 1
}

// VariantPair maps a Radical Supplement variant onto the ideograph it is equivalent to.
type VariantPair struct {
	Variant Codepoint
	Target  Codepoint
}

// StrokeRecord is one kRSUnicode line of the radical-stroke index.
type StrokeRecord struct {
	Ideograph       Codepoint
	RadicalNumber   int
	ResidualStrokes int
	Simplified      bool // radical was marked with the simplified-form apostrophe
}

// KangxiRadicalEntry is one row of the final cross-reference table.
type KangxiRadicalEntry struct {
	Number     int
	KangxiChar Codepoint

	// Intermediary is nil when no candidate ideograph exists for the radical.
	Intermediary *Codepoint

	// Variants are the Radical Supplement codepoints equivalent to Intermediary, in file order.
	Variants []Codepoint
}

// Resolved reports whether an intermediary ideograph was selected.
func (e KangxiRadicalEntry) Resolved() bool {
	return e.Intermediary != nil
}

// Table is the full ordered sequence of entries, radicals 1 through 214.
type Table []KangxiRadicalEntry
