// Package parser reads the Unicode Character Database files that feed the radical table.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
)

// EquivalenceStats counts what happened to each line of an equivalence file.
type EquivalenceStats struct {
	Lines     int // all lines read
	Records   int // well-formed data lines
	Malformed int // data lines that failed to parse
	Pairs     int // expanded pairs kept (variant in the Radical Supplement block)
	Filtered  int // expanded pairs dropped by the block filter
}

// ParseEquivalenceLine parses one line of the form "SRC[..SRC_END] ; TARGET [# comment]".
// Blank and comment-only lines return ErrNoRecord; anything else that fails returns ErrMalformed.
func ParseEquivalenceLine(line string) (models.RawEquivalenceRecord, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return models.RawEquivalenceRecord{}, ErrNoRecord
	}

	src, tgt, ok := strings.Cut(line, ";")
	if !ok {
		return models.RawEquivalenceRecord{}, fmt.Errorf("%w: missing ';' separator", ErrMalformed)
	}
	// Some UCD files carry extra fields after the target; only the first counts.
	tgt, _, _ = strings.Cut(tgt, ";")

	startStr, endStr, isRange := strings.Cut(strings.TrimSpace(src), "..")
	start, err := models.ParseCodepoint(startStr)
	if err != nil {
		return models.RawEquivalenceRecord{}, fmt.Errorf("%w: source: %v", ErrMalformed, err)
	}
	end := start
	if isRange {
		end, err = models.ParseCodepoint(endStr)
		if err != nil {
			return models.RawEquivalenceRecord{}, fmt.Errorf("%w: source end: %v", ErrMalformed, err)
		}
		if end < start {
			return models.RawEquivalenceRecord{}, fmt.Errorf("%w: range %s..%s is reversed", ErrMalformed, start, end)
		}
	}

	target, err := models.ParseCodepoint(tgt)
	if err != nil {
		return models.RawEquivalenceRecord{}, fmt.Errorf("%w: target: %v", ErrMalformed, err)
	}
	if target+(end-start) > models.MaxCodepoint {
		return models.RawEquivalenceRecord{}, fmt.Errorf("%w: target range overflows", ErrMalformed)
	}

	return models.RawEquivalenceRecord{SourceStart: start, SourceEnd: end, TargetStart: target}, nil
}

// Expand turns a record into index-aligned pairs: SourceStart+k maps to TargetStart+k.
func Expand(rec models.RawEquivalenceRecord) []models.VariantPair {
	pairs := make([]models.VariantPair, 0, rec.Len())
	for k := models.Codepoint(0); rec.SourceStart+k <= rec.SourceEnd; k++ {
		pairs = append(pairs, models.VariantPair{
			Variant: rec.SourceStart + k,
			Target:  rec.TargetStart + k,
		})
	}
	return pairs
}

// ReadEquivalences reads an equivalence file, expands every well-formed line and
// keeps the pairs whose variant is in the Radical Supplement block, in file order.
// Malformed lines are skipped and logged at debug level.
func ReadEquivalences(r io.Reader, log *slog.Logger) ([]models.VariantPair, EquivalenceStats, error) {
	if log == nil {
		log = slog.Default()
	}

	var (
		pairs []models.VariantPair
		stats EquivalenceStats
	)
	err := scanLines(r, func(lineNum int, line string, lineErr error) {
		stats.Lines++
		if lineErr != nil {
			stats.Malformed++
			log.Debug("skipping malformed equivalence line", "line", lineNum, "error", lineErr)
			return
		}
		rec, err := ParseEquivalenceLine(line)
		switch {
		case err == nil:
		case isNoRecord(err):
			return
		default:
			stats.Malformed++
			log.Debug("skipping malformed equivalence line", "line", lineNum, "error", err)
			return
		}

		stats.Records++
		for _, p := range Expand(rec) {
			if !p.Variant.IsRadicalSupplement() {
				stats.Filtered++
				continue
			}
			pairs = append(pairs, p)
		}
	})
	if err != nil {
		return nil, stats, err
	}

	stats.Pairs = len(pairs)
	return pairs, stats, nil
}
