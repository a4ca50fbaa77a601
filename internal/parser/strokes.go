package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
)

// TagRSUnicode is the Unihan field carrying the radical/residual-stroke index.
const TagRSUnicode = "kRSUnicode"

// simplifiedMarkers mark a simplified radical form. They may trail either half
// of the value ("149'.0" or "149.0'").
const simplifiedMarkers = "'\""

// StrokeStats counts what happened to each line of a stroke-count file.
type StrokeStats struct {
	Lines      int // all lines read
	Records    int // kRSUnicode lines parsed
	Malformed  int // kRSUnicode lines that failed to parse, or over-long lines
	Simplified int // records whose value carried the simplified-form marker
}

// ParseStrokeLine parses a tab-separated "U+XXXX<TAB>kRSUnicode<TAB>R.S[']" line.
// Lines for any other field, blank lines and comments return ErrNoRecord.
// When the value lists several radical/stroke pairs the first is used.
func ParseStrokeLine(line string) (models.StrokeRecord, error) {
	if line == "" || strings.HasPrefix(line, "#") {
		return models.StrokeRecord{}, ErrNoRecord
	}

	fields := strings.Split(line, "\t")
	if len(fields) < 2 || strings.TrimSpace(fields[1]) != TagRSUnicode {
		return models.StrokeRecord{}, ErrNoRecord
	}
	if len(fields) < 3 {
		return models.StrokeRecord{}, fmt.Errorf("%w: missing value field", ErrMalformed)
	}

	if !strings.HasPrefix(strings.TrimSpace(fields[0]), "U+") {
		return models.StrokeRecord{}, fmt.Errorf("%w: codepoint %q lacks U+ prefix", ErrMalformed, fields[0])
	}
	cp, err := models.ParseCodepoint(fields[0])
	if err != nil {
		return models.StrokeRecord{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	values := strings.Fields(fields[2])
	if len(values) == 0 {
		return models.StrokeRecord{}, fmt.Errorf("%w: empty value", ErrMalformed)
	}
	radStr, resStr, ok := strings.Cut(values[0], ".")
	if !ok {
		return models.StrokeRecord{}, fmt.Errorf("%w: value %q lacks '.'", ErrMalformed, values[0])
	}

	radTrimmed := strings.TrimRight(radStr, simplifiedMarkers)
	radical, err := strconv.Atoi(radTrimmed)
	if err != nil {
		return models.StrokeRecord{}, fmt.Errorf("%w: radical %q: %v", ErrMalformed, radStr, err)
	}
	resTrimmed := strings.TrimRight(resStr, simplifiedMarkers)
	residual, err := strconv.Atoi(resTrimmed)
	if err != nil {
		return models.StrokeRecord{}, fmt.Errorf("%w: residual %q: %v", ErrMalformed, resStr, err)
	}

	return models.StrokeRecord{
		Ideograph:       cp,
		RadicalNumber:   radical,
		ResidualStrokes: residual,
		Simplified:      radTrimmed != radStr || resTrimmed != resStr,
	}, nil
}

// ReadStrokes reads every kRSUnicode record of a Unihan file in file order.
// Malformed lines are skipped and logged at debug level.
func ReadStrokes(r io.Reader, log *slog.Logger) ([]models.StrokeRecord, StrokeStats, error) {
	if log == nil {
		log = slog.Default()
	}

	var (
		records []models.StrokeRecord
		stats   StrokeStats
	)
	err := scanLines(r, func(lineNum int, line string, lineErr error) {
		stats.Lines++
		if lineErr != nil {
			stats.Malformed++
			log.Debug("skipping malformed stroke line", "line", lineNum, "error", lineErr)
			return
		}
		rec, err := ParseStrokeLine(line)
		switch {
		case err == nil:
		case isNoRecord(err):
			return
		default:
			stats.Malformed++
			log.Debug("skipping malformed stroke line", "line", lineNum, "error", err)
			return
		}
		stats.Records++
		if rec.Simplified {
			stats.Simplified++
		}
		records = append(records, rec)
	})
	if err != nil {
		return nil, stats, err
	}
	return records, stats, nil
}
