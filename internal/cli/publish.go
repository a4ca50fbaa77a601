package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/kangxi-radicals/internal/metrics"
	"github.com/raphaelgruber/kangxi-radicals/internal/service"
	"github.com/spf13/cobra"
)

var (
	publishSources   sourceFlags
	publishSelection selectionFlags
	publishQuiet     bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Build the table and store it in SurrealDB",
	Long: `Build the table and upsert all 214 rows into the SurrealDB table
"radical", keyed radical:<number>. Each publish replaces the previous rows and
records the run in "publish_run".

Connection settings come from SURREALDB_URL, SURREALDB_NAMESPACE,
SURREALDB_DATABASE, SURREALDB_USER, SURREALDB_PASS and SURREALDB_AUTH_LEVEL.

Examples:
  radicals publish
  radicals publish --policy unified-first
  SURREALDB_URL=ws://db:8000/rpc radicals publish`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	publishSources.register(publishCmd.Flags())
	publishSelection.register(publishCmd.Flags())
	publishCmd.Flags().BoolVarP(&publishQuiet, "quiet", "q", false, "skip the run summary")
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := connectDB(ctx)
	if err != nil {
		return err
	}

	build := service.NewBuildService(logger, metrics.NewCollector())
	res, err := service.NewPublishService(build, client, logger).Publish(ctx, service.BuildRequest{
		Sources:   publishSources.sources(),
		Selection: publishSelection.selection(),
	})
	if err != nil {
		return err
	}

	if !publishQuiet {
		fmt.Fprint(os.Stderr, renderSummary(res, build.Metrics().Snapshot(), defaultTheme))
	}
	fmt.Printf("Published %d radicals as run %s.\n", len(res.Table), res.RunID)
	return nil
}
