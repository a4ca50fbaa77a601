package cli

import (
	"fmt"
	"os"

	"github.com/raphaelgruber/kangxi-radicals/internal/export"
	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/raphaelgruber/kangxi-radicals/internal/service"
	"github.com/spf13/cobra"
)

var (
	showOutput       outputFlags
	showRadical      int
	showIntermediary string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the table last published to SurrealDB",
	Long: `Read the published table back from SurrealDB and print it, or write it
to a file with --output.

--radical prints a single row. --intermediary prints the rows whose
intermediary ideograph is the given codepoint.

Examples:
  radicals show
  radicals show -f json
  radicals show -o published.csv
  radicals show --radical 85
  radicals show --intermediary U+6C35`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showOutput.register(showCmd.Flags(), stdout)
	showCmd.Flags().IntVar(&showRadical, "radical", 0, "show only this radical number (1-214)")
	showCmd.Flags().StringVar(&showIntermediary, "intermediary", "", "show radicals with this intermediary (U+XXXX)")
	showCmd.MarkFlagsMutuallyExclusive("radical", "intermediary")
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path, format, err := showOutput.resolve(stdout)
	if err != nil {
		return err
	}
	if path == stdout && showOutput.format == "" {
		format = export.FormatTSV
	}

	client, err := connectDB(ctx)
	if err != nil {
		return err
	}

	svc := service.NewPublishService(nil, client, logger)
	table, err := showTable(cmd, svc)
	if err != nil {
		return err
	}

	if path == stdout {
		return export.Encode(os.Stdout, table, format)
	}
	if err := export.WriteFile(ctx, path, table, format); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(table), path)
	return nil
}

// showTable selects the rows requested by the --radical and --intermediary flags.
func showTable(cmd *cobra.Command, svc *service.PublishService) (models.Table, error) {
	ctx := cmd.Context()

	switch {
	case cmd.Flags().Changed("radical"):
		e, err := svc.Lookup(ctx, showRadical)
		if err != nil {
			return nil, err
		}
		return models.Table{e}, nil

	case showIntermediary != "":
		cp, err := models.ParseCodepoint(showIntermediary)
		if err != nil {
			return nil, fmt.Errorf("--intermediary: %w", err)
		}
		table, err := svc.FindByIntermediary(ctx, cp)
		if err != nil {
			return nil, err
		}
		if len(table) == 0 {
			return nil, fmt.Errorf("no published radical has intermediary %s", cp)
		}
		return table, nil
	}

	published, err := svc.Show(ctx)
	if err != nil {
		return nil, err
	}
	run := published.Run
	fmt.Fprintf(os.Stderr, "Run %s (%s, supplement=%s, duplicates=%s): %d resolved, %d unresolved\n",
		run.RunID, run.Policy, run.SupplementCandidates, run.Duplicates, run.Resolved, run.Unresolved)
	return published.Table, nil
}
