package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/raphaelgruber/kangxi-radicals/internal/metrics"
	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/raphaelgruber/kangxi-radicals/internal/radical"
)

// ErrRadicalOutOfRange indicates a lookup for a number outside 1..214.
var ErrRadicalOutOfRange = errors.New("radical number out of range")

// Store persists published tables. *db.Client implements it.
type Store interface {
	QueryPublish(ctx context.Context, run models.PublishRun, rows []models.RadicalRecord) error
	QueryListRadicals(ctx context.Context) ([]models.RadicalRecord, error)
	QueryGetRadical(ctx context.Context, n int) (*models.RadicalRecord, error)
	QueryFindByIntermediary(ctx context.Context, code string) ([]models.RadicalRecord, error)
	QueryLatestRun(ctx context.Context) (*models.PublishRun, error)
}

// PublishService builds tables and stores them.
type PublishService struct {
	build  *BuildService
	store  Store
	logger *slog.Logger
}

// NewPublishService creates a publish service on top of a build service.
func NewPublishService(build *BuildService, store Store, logger *slog.Logger) *PublishService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublishService{build: build, store: store, logger: logger}
}

// Publish runs a build and upserts all 214 rows under the build's run ID.
// The store is only written after the build has fully succeeded.
func (s *PublishService) Publish(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	res, err := s.build.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	supplement, err := radical.ParseSupplementCandidates(req.Selection.SupplementCandidates)
	if err != nil {
		return nil, err
	}
	dup, err := radical.ParseDuplicatePolicy(req.Selection.Duplicates)
	if err != nil {
		return nil, err
	}

	rows := make([]models.RadicalRecord, len(res.Table))
	for i, e := range res.Table {
		rows[i] = models.NewRadicalRecord(e, res.RunID, res.Policy)
	}
	run := models.PublishRun{
		RunID:                res.RunID,
		Policy:               res.Policy,
		SupplementCandidates: supplement.String(),
		Duplicates:           dup.String(),
		Resolved:             res.Stats.Resolved,
		Unresolved:           res.Stats.Unresolved,
	}

	err = s.build.Metrics().Time(metrics.StagePublish, func() error {
		return s.store.QueryPublish(ctx, run, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("publish run %s: %w", res.RunID, err)
	}

	s.logger.Info("table published", "run_id", res.RunID, "rows", len(rows), "policy", res.Policy)
	return res, nil
}

// Published is the stored table together with the run that wrote it.
type Published struct {
	Run   *models.PublishRun
	Table models.Table
}

// Show reads the published table back in radical order.
func (s *PublishService) Show(ctx context.Context) (*Published, error) {
	run, err := s.store.QueryLatestRun(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.store.QueryListRadicals(ctx)
	if err != nil {
		return nil, err
	}

	table, err := entries(records)
	if err != nil {
		return nil, err
	}
	if len(table) != models.RadicalCount {
		s.logger.Warn("published table is incomplete", "rows", len(table))
	}
	return &Published{Run: run, Table: table}, nil
}

// Lookup returns the published entry for radical n.
func (s *PublishService) Lookup(ctx context.Context, n int) (models.KangxiRadicalEntry, error) {
	if !models.ValidRadical(n) {
		return models.KangxiRadicalEntry{}, fmt.Errorf("%w: %d", ErrRadicalOutOfRange, n)
	}
	rec, err := s.store.QueryGetRadical(ctx, n)
	if err != nil {
		return models.KangxiRadicalEntry{}, err
	}
	return rec.Entry()
}

// FindByIntermediary returns the published entries whose intermediary is cp,
// in radical order. The result is empty when no radical uses cp.
func (s *PublishService) FindByIntermediary(ctx context.Context, cp models.Codepoint) (models.Table, error) {
	records, err := s.store.QueryFindByIntermediary(ctx, cp.String())
	if err != nil {
		return nil, err
	}
	return entries(records)
}

func entries(records []models.RadicalRecord) (models.Table, error) {
	table := make(models.Table, 0, len(records))
	for _, r := range records {
		e, err := r.Entry()
		if err != nil {
			return nil, err
		}
		table = append(table, e)
	}
	return table, nil
}
