package service

import (
	"bytes"
	"context"
	"fmt"

	difflib "github.com/pmezard/go-difflib/difflib"
	"github.com/raphaelgruber/kangxi-radicals/internal/export"
	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/raphaelgruber/kangxi-radicals/internal/radical"
)

// CompareRequest asks for the same sources to be selected under two policies.
type CompareRequest struct {
	Sources              Sources
	Duplicates           string
	SupplementCandidates string
	PolicyA              string
	PolicyB              string
	// Context is the number of unchanged lines around each hunk; 0 means 3.
	Context int
}

// Change is one radical whose intermediary differs between the two policies.
type Change struct {
	Number int
	A      *models.Codepoint
	B      *models.Codepoint
}

// Comparison is the outcome of a policy comparison.
type Comparison struct {
	PolicyA string
	PolicyB string
	Changes []Change
	// Diff is a unified diff of the two tables in TSV form; empty when they agree.
	Diff string
}

// Compare loads the sources once and selects them under both policies.
func (s *BuildService) Compare(ctx context.Context, req CompareRequest) (*Comparison, error) {
	dup, err := radical.ParseDuplicatePolicy(req.Duplicates)
	if err != nil {
		return nil, err
	}
	optsA, err := SelectorOptions(Selection{Policy: req.PolicyA, SupplementCandidates: req.SupplementCandidates})
	if err != nil {
		return nil, err
	}
	optsB, err := SelectorOptions(Selection{Policy: req.PolicyB, SupplementCandidates: req.SupplementCandidates})
	if err != nil {
		return nil, err
	}

	loaded, err := s.Load(ctx, req.Sources, dup)
	if err != nil {
		return nil, err
	}

	tableA, _ := s.Select(loaded, optsA)
	tableB, _ := s.Select(loaded, optsB)

	cmp := &Comparison{
		PolicyA: policyName(req.PolicyA),
		PolicyB: policyName(req.PolicyB),
		Changes: DiffTables(tableA, tableB),
	}
	if len(cmp.Changes) == 0 {
		return cmp, nil
	}

	cmp.Diff, err = unifiedDiff(cmp.PolicyA, cmp.PolicyB, tableA, tableB, req.Context)
	if err != nil {
		return nil, err
	}
	return cmp, nil
}

// DiffTables lists the radicals whose intermediary differs between a and b.
// Both tables must be in radical order and of equal length.
func DiffTables(a, b models.Table) []Change {
	var changes []Change
	for i := range a {
		if i >= len(b) {
			break
		}
		if !sameCodepoint(a[i].Intermediary, b[i].Intermediary) {
			changes = append(changes, Change{
				Number: a[i].Number,
				A:      a[i].Intermediary,
				B:      b[i].Intermediary,
			})
		}
	}
	return changes
}

func sameCodepoint(a, b *models.Codepoint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func unifiedDiff(nameA, nameB string, a, b models.Table, contextLines int) (string, error) {
	if contextLines <= 0 {
		contextLines = 3
	}
	var bufA, bufB bytes.Buffer
	if err := export.Encode(&bufA, a, export.FormatTSV); err != nil {
		return "", err
	}
	if err := export.Encode(&bufB, b, export.FormatTSV); err != nil {
		return "", err
	}

	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(bufA.String()),
		B:        difflib.SplitLines(bufB.String()),
		FromFile: nameA,
		ToFile:   nameB,
		Context:  contextLines,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("diff tables: %w", err)
	}
	return s, nil
}

// String renders a change as "85: U+6C34 -> U+6C35".
func (c Change) String() string {
	return fmt.Sprintf("%d: %s -> %s", c.Number, formatOptional(c.A), formatOptional(c.B))
}

func formatOptional(c *models.Codepoint) string {
	if c == nil {
		return export.NotAvailable
	}
	return c.String()
}
