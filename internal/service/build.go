// Package service provides the build, compare and publish workflows behind the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/raphaelgruber/kangxi-radicals/internal/export"
	"github.com/raphaelgruber/kangxi-radicals/internal/metrics"
	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/raphaelgruber/kangxi-radicals/internal/parser"
	"github.com/raphaelgruber/kangxi-radicals/internal/radical"
	"golang.org/x/sync/errgroup"
)

// ErrSourceUnavailable indicates a required input file could not be read.
// Nothing is written when a build fails with this error.
var ErrSourceUnavailable = errors.New("source unavailable")

// Sources names the two input files of a build.
type Sources struct {
	EquivalenceFile string
	StrokesFile     string
}

// Selection names the knobs of the canonical selector, as configured.
type Selection struct {
	Policy               string
	SupplementCandidates string
	Duplicates           string
}

// BuildRequest describes one build. OutputFile may be empty to skip writing.
type BuildRequest struct {
	Sources    Sources
	Selection  Selection
	OutputFile string
	Format     export.Format
}

// Loaded holds the indexes built from the sources.
type Loaded struct {
	Index       *radical.EquivalenceIndex
	Pool        *radical.CandidatePool
	Equivalence parser.EquivalenceStats
	Strokes     parser.StrokeStats
}

// BuildResult is the outcome of a successful build.
type BuildResult struct {
	RunID      string
	Policy     string
	Table      models.Table
	Stats      radical.Stats
	Loaded     *Loaded
	OutputFile string
}

// BuildService runs table builds.
type BuildService struct {
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewBuildService creates a build service. Nil arguments get defaults.
func NewBuildService(logger *slog.Logger, collector *metrics.Collector) *BuildService {
	if logger == nil {
		logger = slog.Default()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &BuildService{logger: logger, metrics: collector}
}

// Metrics returns the collector the service records into.
func (s *BuildService) Metrics() *metrics.Collector {
	return s.metrics
}

// NewRunID returns a short identifier for one run.
func NewRunID() string {
	return uuid.New().String()[:8]
}

// Build loads the sources, selects all 214 entries and, when OutputFile is set,
// writes the table atomically. A run either writes the whole table or nothing.
func (s *BuildService) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	runID := NewRunID()
	log := s.logger.With("run_id", runID)

	dup, err := radical.ParseDuplicatePolicy(req.Selection.Duplicates)
	if err != nil {
		return nil, err
	}
	opts, err := SelectorOptions(req.Selection)
	if err != nil {
		return nil, err
	}

	log.Info("build started",
		"equivalence_file", req.Sources.EquivalenceFile,
		"strokes_file", req.Sources.StrokesFile,
		"policy", policyName(req.Selection.Policy),
		"supplement_candidates", opts.Supplement.String(),
		"duplicates", dup.String(),
	)

	loaded, err := s.load(ctx, log, req.Sources, dup)
	if err != nil {
		return nil, err
	}

	table, stats := s.selectTable(log, loaded, opts)

	result := &BuildResult{
		RunID:  runID,
		Policy: policyName(req.Selection.Policy),
		Table:  table,
		Stats:  stats,
		Loaded: loaded,
	}

	if req.OutputFile != "" {
		err := s.metrics.Time(metrics.StageWrite, func() error {
			return export.WriteFile(ctx, req.OutputFile, table, req.Format)
		})
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", req.OutputFile, err)
		}
		result.OutputFile = req.OutputFile
		log.Info("table written", "path", req.OutputFile, "format", req.Format, "rows", len(table))
	}

	return result, nil
}

// Load builds the EquivalenceIndex and CandidatePool concurrently.
func (s *BuildService) Load(ctx context.Context, src Sources, dup radical.DuplicatePolicy) (*Loaded, error) {
	return s.load(ctx, s.logger, src, dup)
}

func (s *BuildService) load(ctx context.Context, log *slog.Logger, src Sources, dup radical.DuplicatePolicy) (*Loaded, error) {
	loaded := &Loaded{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.metrics.Time(metrics.StageParseEquivalence, func() error {
			pairs, stats, err := readSource(gctx, src.EquivalenceFile, func(r io.Reader) ([]models.VariantPair, parser.EquivalenceStats, error) {
				return parser.ReadEquivalences(r, log)
			})
			if err != nil {
				return err
			}
			loaded.Index = radical.NewEquivalenceIndex(pairs, dup)
			loaded.Equivalence = stats

			s.metrics.Add(metrics.CounterEquivalenceLines, int64(stats.Lines))
			s.metrics.Add(metrics.CounterEquivalenceMalformed, int64(stats.Malformed))
			s.metrics.Add(metrics.CounterVariantPairs, int64(stats.Pairs))
			s.metrics.Add(metrics.CounterVariantsFiltered, int64(stats.Filtered))
			log.Info("equivalence index built",
				"targets", loaded.Index.Len(),
				"pairs", loaded.Index.Pairs(),
				"malformed", stats.Malformed,
				"filtered", stats.Filtered,
			)
			return nil
		})
	})

	g.Go(func() error {
		return s.metrics.Time(metrics.StageParseStrokes, func() error {
			records, stats, err := readSource(gctx, src.StrokesFile, func(r io.Reader) ([]models.StrokeRecord, parser.StrokeStats, error) {
				return parser.ReadStrokes(r, log)
			})
			if err != nil {
				return err
			}
			loaded.Pool = radical.NewCandidatePool(records)
			loaded.Strokes = stats

			s.metrics.Add(metrics.CounterStrokeLines, int64(stats.Lines))
			s.metrics.Add(metrics.CounterStrokeMalformed, int64(stats.Malformed))
			s.metrics.Add(metrics.CounterStrokeOutOfRange, int64(loaded.Pool.OutOfRange()))
			s.metrics.Add(metrics.CounterStrokeSimplified, int64(stats.Simplified))
			log.Info("candidate pool built",
				"records", stats.Records,
				"radicals", loaded.Pool.Radicals(),
				"malformed", stats.Malformed,
				"simplified", stats.Simplified,
				"out_of_range", loaded.Pool.OutOfRange(),
			)
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// Select runs the selector over already loaded indexes.
func (s *BuildService) Select(loaded *Loaded, opts radical.Options) (models.Table, radical.Stats) {
	return s.selectTable(s.logger, loaded, opts)
}

func (s *BuildService) selectTable(log *slog.Logger, loaded *Loaded, opts radical.Options) (models.Table, radical.Stats) {
	var (
		table models.Table
		stats radical.Stats
	)
	_ = s.metrics.Time(metrics.StageSelect, func() error {
		table, stats = radical.NewSelector(loaded.Pool, loaded.Index, opts).Table()
		return nil
	})

	s.metrics.Add(metrics.CounterResolved, int64(stats.Resolved))
	s.metrics.Add(metrics.CounterUnresolved, int64(stats.Unresolved))
	s.metrics.Add(metrics.CounterAmbiguous, int64(stats.Ambiguous))
	s.metrics.Add(metrics.CounterUnlinkedTargets, int64(len(stats.UnlinkedTargets)))

	log.Info("radicals selected",
		"resolved", stats.Resolved,
		"unresolved", stats.Unresolved,
		"contested", stats.Contested,
		"ambiguous", stats.Ambiguous,
		"unlinked_targets", len(stats.UnlinkedTargets),
	)
	if stats.SupplementSelected > 0 {
		log.Warn("intermediary ideographs taken from the Radical Supplement block",
			"count", stats.SupplementSelected)
	}
	for _, e := range table {
		if !e.Resolved() {
			log.Debug("radical unresolved", "radical", e.Number, "kangxi", e.KangxiChar.String())
		}
	}
	for _, target := range stats.UnlinkedTargets {
		log.Debug("equivalence target not selected", "target", target.String(),
			"variants", len(loaded.Index.VariantsOf(target)))
	}
	return table, stats
}

// SelectorOptions resolves configured names into selector options.
func SelectorOptions(sel Selection) (radical.Options, error) {
	policy, err := radical.PolicyByName(sel.Policy)
	if err != nil {
		return radical.Options{}, err
	}
	supplement, err := radical.ParseSupplementCandidates(sel.SupplementCandidates)
	if err != nil {
		return radical.Options{}, err
	}
	return radical.Options{Policy: policy, Supplement: supplement}, nil
}

func policyName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return radical.DefaultPolicy
	}
	return name
}

// readSource opens path and hands it to read. Open and read failures are
// reported as ErrSourceUnavailable naming the file. Reading stops with the
// context's error once ctx is done.
func readSource[T any, S any](ctx context.Context, path string, read func(io.Reader) (T, S, error)) (T, S, error) {
	var (
		zeroT T
		zeroS S
	)
	f, err := os.Open(path)
	if err != nil {
		return zeroT, zeroS, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	v, stats, err := read(&contextReader{ctx: ctx, r: f})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zeroT, zeroS, fmt.Errorf("read %s: %w", path, ctxErr)
		}
		return zeroT, zeroS, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	return v, stats, nil
}

// contextReader fails reads once its context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
