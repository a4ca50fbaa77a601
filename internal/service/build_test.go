package service

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphaelgruber/kangxi-radicals/internal/export"
	"github.com/raphaelgruber/kangxi-radicals/internal/metrics"
	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/raphaelgruber/kangxi-radicals/internal/radical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const equivalenceFixture = `# EquivalentUnifiedIdeograph.txt
2E8C..2E8D    ; 5C0F # CJK RADICAL SMALL ONE..CJK RADICAL SMALL TWO
2EA2          ; 6C35 # CJK RADICAL WATER TWO
2F00          ; 4E00 # KANGXI RADICAL ONE
not a record
`

const strokesFixture = "# Unihan_IRGSources.txt\n" +
	"U+4E00\tkRSUnicode\t1.0\n" +
	"U+4E00\tkIRG_GSource\tG0-523B\n" +
	"U+5C0F\tkRSUnicode\t42.0\n" +
	"U+6C34\tkRSUnicode\t85.0\n" +
	"U+6C35\tkRSUnicode\t85.0\n" +
	"U+6C37\tkRSUnicode\t85.1\n" +
	"U+2EA2\tkRSUnicode\t85.0\n" +
	"U+9F9F\tkRSUnicode\t213'.0\n" +
	"U+9FA0\tkRSUnicode\t300.0\n" +
	"U+XYZ\tkRSUnicode\t1.0\n"

func writeFixtures(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()
	src := Sources{
		EquivalenceFile: filepath.Join(dir, "EquivalentUnifiedIdeograph.txt"),
		StrokesFile:     filepath.Join(dir, "Unihan_IRGSources.txt"),
	}
	require.NoError(t, os.WriteFile(src.EquivalenceFile, []byte(equivalenceFixture), 0o644))
	require.NoError(t, os.WriteFile(src.StrokesFile, []byte(strokesFixture), 0o644))
	return src
}

func quietService() *BuildService {
	return NewBuildService(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), metrics.NewCollector())
}

func TestBuild_Table(t *testing.T) {
	src := writeFixtures(t)
	svc := quietService()

	res, err := svc.Build(context.Background(), BuildRequest{Sources: src})
	require.NoError(t, err)

	require.Len(t, res.Table, models.RadicalCount)
	for i, e := range res.Table {
		assert.Equal(t, i+1, e.Number)
		assert.Equal(t, models.KangxiChar(i+1), e.KangxiChar)
	}

	assert.Len(t, res.RunID, 8)
	assert.Equal(t, radical.DefaultPolicy, res.Policy)
	assert.Empty(t, res.OutputFile)

	one := res.Table[0]
	require.True(t, one.Resolved())
	assert.Equal(t, models.Codepoint(0x4E00), *one.Intermediary)
	assert.Empty(t, one.Variants, "Kangxi block sources are not variants")

	small := res.Table[41]
	require.True(t, small.Resolved())
	assert.Equal(t, models.Codepoint(0x5C0F), *small.Intermediary)
	assert.Equal(t, []models.Codepoint{0x2E8C, 0x2E8D}, small.Variants)

	water := res.Table[84]
	require.True(t, water.Resolved())
	assert.Equal(t, models.Codepoint(0x6C35), *water.Intermediary, "equivalence target wins over smaller codepoint")
	assert.Equal(t, []models.Codepoint{0x2EA2}, water.Variants)

	assert.True(t, res.Table[212].Resolved(), "simplified marker is stripped")
	assert.False(t, res.Table[1].Resolved())

	assert.Equal(t, 4, res.Stats.Resolved)
	assert.Equal(t, models.RadicalCount-4, res.Stats.Unresolved)
	assert.Equal(t, 1, res.Stats.SupplementExcluded)
	assert.Zero(t, res.Stats.SupplementSelected)
	assert.Equal(t, []models.Codepoint{0x5C10}, res.Stats.UnlinkedTargets, "2E8D maps to U+5C10, which no radical selected")

	assert.Equal(t, 1, res.Loaded.Equivalence.Malformed)
	assert.Equal(t, 1, res.Loaded.Equivalence.Filtered)
	assert.Equal(t, 1, res.Loaded.Strokes.Malformed)
	assert.Equal(t, 1, res.Loaded.Strokes.Simplified)
	assert.Equal(t, 1, res.Loaded.Pool.OutOfRange())

	snap := svc.Metrics().Snapshot()
	assert.Equal(t, int64(4), snap.Counters[metrics.CounterResolved])
	assert.Equal(t, int64(1), snap.Counters[metrics.CounterStrokeOutOfRange])
	assert.Equal(t, int64(1), snap.Counters[metrics.CounterStrokeSimplified])
	assert.Equal(t, int64(1), snap.Counters[metrics.CounterUnlinkedTargets])
	_, ok := snap.Stage(metrics.StageSelect)
	assert.True(t, ok)
}

func TestBuild_Policies(t *testing.T) {
	src := writeFixtures(t)

	tests := []struct {
		policy     string
		supplement string
		want       models.Codepoint
	}{
		{radical.PolicyEquivalenceFirst, "exclude", 0x6C35},
		{radical.PolicySmallest, "exclude", 0x6C34},
		{radical.PolicyUnifiedFirst, "exclude", 0x6C35},
		{radical.PolicySmallest, "keep", 0x2EA2},
		{radical.PolicyUnifiedFirst, "keep", 0x6C35},
		{radical.PolicyEquivalenceFirst, "keep", 0x6C35},
	}
	for _, tt := range tests {
		t.Run(tt.policy+"/"+tt.supplement, func(t *testing.T) {
			res, err := quietService().Build(context.Background(), BuildRequest{
				Sources:   src,
				Selection: Selection{Policy: tt.policy, SupplementCandidates: tt.supplement},
			})
			require.NoError(t, err)
			require.Len(t, res.Table, models.RadicalCount)
			require.True(t, res.Table[84].Resolved())
			assert.Equal(t, tt.want, *res.Table[84].Intermediary)
		})
	}
}

func TestBuild_WritesDeterministicOutput(t *testing.T) {
	src := writeFixtures(t)
	out := filepath.Join(t.TempDir(), "radicals.csv")
	req := BuildRequest{Sources: src, OutputFile: out, Format: export.FormatCSV}

	res, err := quietService().Build(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, out, res.OutputFile)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, err = quietService().Build(context.Background(), req)
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, models.RadicalCount+1, bytes.Count(first, []byte("\n")))
}

func TestBuild_SourceUnavailable(t *testing.T) {
	src := writeFixtures(t)
	out := filepath.Join(t.TempDir(), "radicals.csv")

	tests := []struct {
		name string
		src  Sources
	}{
		{"missing equivalence file", Sources{EquivalenceFile: src.EquivalenceFile + ".missing", StrokesFile: src.StrokesFile}},
		{"missing strokes file", Sources{EquivalenceFile: src.EquivalenceFile, StrokesFile: src.StrokesFile + ".missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietService().Build(context.Background(), BuildRequest{
				Sources:    tt.src,
				OutputFile: out,
				Format:     export.FormatCSV,
			})
			require.ErrorIs(t, err, ErrSourceUnavailable)

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "no output on failure")
		})
	}
}

func TestBuild_Cancelled(t *testing.T) {
	src := writeFixtures(t)
	out := filepath.Join(t.TempDir(), "radicals.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietService().Build(ctx, BuildRequest{Sources: src, OutputFile: out, Format: export.FormatCSV})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrSourceUnavailable)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output on cancellation")
}

func TestContextReader_StopsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &contextReader{ctx: ctx, r: strings.NewReader("abcdef")}

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf[:n]))

	cancel()
	_, err = r.Read(buf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_UnknownOptions(t *testing.T) {
	src := writeFixtures(t)
	tests := []struct {
		name string
		sel  Selection
	}{
		{"policy", Selection{Policy: "random"}},
		{"supplement", Selection{SupplementCandidates: "sometimes"}},
		{"duplicates", Selection{Duplicates: "squash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietService().Build(context.Background(), BuildRequest{Sources: src, Selection: tt.sel})
			assert.ErrorIs(t, err, radical.ErrUnknownOption)
		})
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
