package models

import (
	"fmt"
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// RadicalRecord is the stored form of one table entry.
type RadicalRecord struct {
	ID *surrealmodels.RecordID `json:"id,omitempty"`

	Number     int    `json:"number"`
	KangxiChar string `json:"kangxi_char"`
	KangxiCode string `json:"kangxi_code"`

	// Absent when the radical is unresolved
	IntermediaryChar *string `json:"intermediary_char,omitempty"`
	IntermediaryCode *string `json:"intermediary_code,omitempty"`

	SupplementChars []string `json:"supplement_chars"`
	SupplementCodes []string `json:"supplement_codes"`

	// Provenance
	Policy    string     `json:"policy"`
	RunID     string     `json:"run_id"`
	Published *time.Time `json:"published,omitempty"`
}

// NewRadicalRecord converts an entry for storage.
func NewRadicalRecord(e KangxiRadicalEntry, runID, policy string) RadicalRecord {
	r := RadicalRecord{
		Number:          e.Number,
		KangxiChar:      e.KangxiChar.Char(),
		KangxiCode:      e.KangxiChar.String(),
		SupplementChars: make([]string, len(e.Variants)),
		SupplementCodes: make([]string, len(e.Variants)),
		Policy:          policy,
		RunID:           runID,
	}
	if e.Intermediary != nil {
		char, code := e.Intermediary.Char(), e.Intermediary.String()
		r.IntermediaryChar = &char
		r.IntermediaryCode = &code
	}
	for i, v := range e.Variants {
		r.SupplementChars[i] = v.Char()
		r.SupplementCodes[i] = v.String()
	}
	return r
}

// Entry converts a stored record back into a table entry.
func (r RadicalRecord) Entry() (KangxiRadicalEntry, error) {
	if !ValidRadical(r.Number) {
		return KangxiRadicalEntry{}, fmt.Errorf("record has radical number %d", r.Number)
	}
	if r.ID != nil {
		n, err := RecordIDNumber(*r.ID)
		if err != nil {
			return KangxiRadicalEntry{}, fmt.Errorf("radical %d record id: %w", r.Number, err)
		}
		if n != r.Number {
			return KangxiRadicalEntry{}, fmt.Errorf("record id %d does not match radical number %d", n, r.Number)
		}
	}
	e := KangxiRadicalEntry{
		Number:     r.Number,
		KangxiChar: KangxiChar(r.Number),
	}
	if r.IntermediaryCode != nil {
		cp, err := ParseCodepoint(*r.IntermediaryCode)
		if err != nil {
			return KangxiRadicalEntry{}, fmt.Errorf("radical %d intermediary: %w", r.Number, err)
		}
		e.Intermediary = &cp
	}
	for _, code := range r.SupplementCodes {
		cp, err := ParseCodepoint(code)
		if err != nil {
			return KangxiRadicalEntry{}, fmt.Errorf("radical %d variant: %w", r.Number, err)
		}
		e.Variants = append(e.Variants, cp)
	}
	return e, nil
}

// PublishRun records one publish of the full table.
type PublishRun struct {
	ID *surrealmodels.RecordID `json:"id,omitempty"`

	RunID                string     `json:"run_id"`
	Policy               string     `json:"policy"`
	SupplementCandidates string     `json:"supplement_candidates"`
	Duplicates           string     `json:"duplicates"`
	Resolved             int        `json:"resolved"`
	Unresolved           int        `json:"unresolved"`
	Created              *time.Time `json:"created,omitempty"`
}
