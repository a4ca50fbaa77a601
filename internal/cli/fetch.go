package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/raphaelgruber/kangxi-radicals/internal/fetch"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	fetchDir     string
	fetchBaseURL string
	fetchForce   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the UCD source files",
	Long: `Download EquivalentUnifiedIdeograph.txt and Unihan.zip from the Unicode
Character Database and extract Unihan_IRGSources.txt.

Files that already exist are kept unless --force is set. A progress bar is
shown when stderr is a terminal.

Examples:
  radicals fetch
  radicals fetch --dir ucd
  radicals fetch --base-url https://www.unicode.org/Public/16.0.0/ --force`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchDir, "dir", "d", "", "destination directory (default from config)")
	fetchCmd.Flags().StringVar(&fetchBaseURL, "base-url", "", "UCD base URL (default from config)")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "download even if the files exist")
}

func runFetch(cmd *cobra.Command, args []string) error {
	req := fetch.Request{
		Dir:             firstNonEmpty(fetchDir, cfg.SourceDir, "."),
		EquivalenceFile: cfg.EquivalenceFile,
		StrokesFile:     cfg.StrokesFile,
		Force:           fetchForce,
	}
	baseURL := firstNonEmpty(fetchBaseURL, cfg.UCDBaseURL)

	run := func(ctx context.Context, progress fetch.Progress) ([]fetch.File, error) {
		var opts []fetch.Option
		if progress != nil {
			opts = append(opts, fetch.WithProgress(progress))
		}
		f, err := fetch.New(baseURL, logger, opts...)
		if err != nil {
			return nil, err
		}
		return f.Fetch(ctx, req)
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		_, err := runFetchProgress(cmd.Context(), run)
		return err
	}

	files, err := run(cmd.Context(), nil)
	if err != nil {
		return err
	}
	fmt.Print(renderFiles(files, defaultTheme))
	return nil
}
