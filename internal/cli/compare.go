package cli

import (
	"fmt"

	"github.com/raphaelgruber/kangxi-radicals/internal/radical"
	"github.com/raphaelgruber/kangxi-radicals/internal/service"
	"github.com/spf13/cobra"
)

var (
	compareSources     sourceFlags
	compareSupplement  string
	compareDuplicates  string
	compareContext     int
	compareChangesOnly bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [policy-a] [policy-b]",
	Short: "Show how two tie-break policies differ",
	Long: `Select the table under two policies and print the radicals whose
intermediary ideograph changes, followed by a unified diff of both tables.

Policy A defaults to the configured policy, policy B to "smallest".

Examples:
  radicals compare
  radicals compare equivalence-first unified-first
  radicals compare smallest unified-first --supplement keep
  radicals compare --changes-only`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCompare,
}

func init() {
	compareSources.register(compareCmd.Flags())
	compareCmd.Flags().StringVar(&compareSupplement, "supplement", "", "Radical Supplement candidates: exclude or keep (default from config)")
	compareCmd.Flags().StringVar(&compareDuplicates, "duplicates", "", "duplicate variants: preserve or dedupe (default from config)")
	compareCmd.Flags().IntVar(&compareContext, "context", 3, "unchanged lines around each diff hunk")
	compareCmd.Flags().BoolVar(&compareChangesOnly, "changes-only", false, "omit the unified diff")
}

func runCompare(cmd *cobra.Command, args []string) error {
	policyA, policyB := firstNonEmpty(cfg.Policy, radical.DefaultPolicy), radical.PolicySmallest
	if len(args) > 0 {
		policyA = args[0]
	}
	if len(args) > 1 {
		policyB = args[1]
	}

	svc := service.NewBuildService(logger, nil)
	cmp, err := svc.Compare(cmd.Context(), service.CompareRequest{
		Sources:              compareSources.sources(),
		Duplicates:           firstNonEmpty(compareDuplicates, cfg.Duplicates),
		SupplementCandidates: firstNonEmpty(compareSupplement, cfg.SupplementCandidates),
		PolicyA:              policyA,
		PolicyB:              policyB,
		Context:              compareContext,
	})
	if err != nil {
		return err
	}

	if len(cmp.Changes) == 0 {
		fmt.Printf("%s and %s select the same ideographs.\n", cmp.PolicyA, cmp.PolicyB)
		return nil
	}

	fmt.Printf("%d radicals differ (%s -> %s):\n", len(cmp.Changes), cmp.PolicyA, cmp.PolicyB)
	for _, c := range cmp.Changes {
		fmt.Printf("  %s\n", c)
	}
	if !compareChangesOnly {
		fmt.Println()
		fmt.Print(cmp.Diff)
	}
	return nil
}
