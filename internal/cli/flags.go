package cli

import (
	"path/filepath"
	"strings"

	"github.com/raphaelgruber/kangxi-radicals/internal/export"
	"github.com/raphaelgruber/kangxi-radicals/internal/radical"
	"github.com/raphaelgruber/kangxi-radicals/internal/service"
	"github.com/spf13/pflag"
)

// stdout as an output path writes the table to standard output.
const stdout = "-"

// sourceFlags override the configured input files.
type sourceFlags struct {
	equivalence string
	strokes     string
}

func (f *sourceFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.equivalence, "equivalence", "", "EquivalentUnifiedIdeograph.txt path (default from config)")
	fs.StringVar(&f.strokes, "strokes", "", "Unihan kRSUnicode source path (default from config)")
}

func (f *sourceFlags) sources() service.Sources {
	src := service.Sources{
		EquivalenceFile: cfg.SourcePath(cfg.EquivalenceFile),
		StrokesFile:     cfg.SourcePath(cfg.StrokesFile),
	}
	if f.equivalence != "" {
		src.EquivalenceFile = f.equivalence
	}
	if f.strokes != "" {
		src.StrokesFile = f.strokes
	}
	return src
}

// selectionFlags override the configured selector knobs.
type selectionFlags struct {
	policy     string
	supplement string
	duplicates string
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.policy, "policy", "p", "",
		"tie-break policy: "+strings.Join(radical.PolicyNames(), ", ")+" (default from config)")
	fs.StringVar(&f.supplement, "supplement", "", "Radical Supplement candidates: exclude or keep (default from config)")
	fs.StringVar(&f.duplicates, "duplicates", "", "duplicate variants: preserve or dedupe (default from config)")
}

func (f *selectionFlags) selection() service.Selection {
	return service.Selection{
		Policy:               firstNonEmpty(f.policy, cfg.Policy),
		SupplementCandidates: firstNonEmpty(f.supplement, cfg.SupplementCandidates),
		Duplicates:           firstNonEmpty(f.duplicates, cfg.Duplicates),
	}
}

// outputFlags choose where and how a table is written.
type outputFlags struct {
	path   string
	format string
}

func (f *outputFlags) register(fs *pflag.FlagSet, defaultPath string) {
	fs.StringVarP(&f.path, "output", "o", defaultPath, `output file, "-" for stdout`)
	fs.StringVarP(&f.format, "format", "f", "", "csv, tsv, json or yaml (default from extension or config)")
}

// resolve returns the output path and format. An explicit --format wins, then
// a recognized file extension, then the configured format.
func (f *outputFlags) resolve(fallbackPath string) (string, export.Format, error) {
	path := firstNonEmpty(f.path, fallbackPath)
	if f.format != "" {
		format, err := export.ParseFormat(f.format)
		return path, format, err
	}
	if path != stdout && path != "" {
		if format, err := export.ParseFormat(filepath.Ext(path)); err == nil {
			return path, format, nil
		}
	}
	format, err := export.ParseFormat(cfg.OutputFormat)
	return path, format, err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
