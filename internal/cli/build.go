package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/kangxi-radicals/internal/export"
	"github.com/raphaelgruber/kangxi-radicals/internal/metrics"
	"github.com/raphaelgruber/kangxi-radicals/internal/service"
	"github.com/spf13/cobra"
)

var (
	buildSources   sourceFlags
	buildSelection selectionFlags
	buildOutput    outputFlags
	buildQuiet     bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the Kangxi radical master table",
	Long: `Build the 214-row Kangxi radical table from the UCD sources.

The table is written atomically: on any error the previous output file is
left untouched. A run summary is printed to stderr unless --quiet is set.

Examples:
  radicals build
  radicals build -o radicals.json
  radicals build -o - -f tsv
  radicals build --policy smallest --supplement keep
  radicals build --equivalence ucd/EquivalentUnifiedIdeograph.txt --strokes ucd/Unihan_IRGSources.txt`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildSources.register(buildCmd.Flags())
	buildSelection.register(buildCmd.Flags())
	buildOutput.register(buildCmd.Flags(), "")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "skip the run summary")
}

func runBuild(cmd *cobra.Command, args []string) error {
	path, format, err := buildOutput.resolve(cfg.OutputFile)
	if err != nil {
		return err
	}

	req := service.BuildRequest{
		Sources:   buildSources.sources(),
		Selection: buildSelection.selection(),
		Format:    format,
	}
	if path != stdout {
		req.OutputFile = path
	}

	svc := service.NewBuildService(logger, metrics.NewCollector())
	res, err := svc.Build(cmd.Context(), req)
	if err != nil {
		return err
	}

	if path == stdout {
		if err := export.Encode(os.Stdout, res.Table, format); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
	}

	if !buildQuiet {
		fmt.Fprint(os.Stderr, renderSummary(res, svc.Metrics().Snapshot(), defaultTheme))
	}
	return nil
}
