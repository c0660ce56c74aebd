package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	statsLevel int
	statsOps   int
	statsSeed  int64
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsLevel, "level", 4, "Behavior level to run (1-4)")
	cmd.Flags().IntVar(&statsOps, "ops", 10000, "Number of workload operations")
	cmd.Flags().Int64Var(&statsSeed, "seed", 42, "Workload seed")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Run a workload at one level and print the counters",
		Long: `The stats command drives a seeded malloc/free/realloc workload against a
fresh allocator at the chosen behavior level and prints the six heap
counters plus the internal operation statistics.

Example:
  heapctl stats --level 4 --ops 50000
  heapctl stats --level 2 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

func runStats() error {
	opts, ok := levelOptions[statsLevel]
	if !ok {
		return fmt.Errorf("unknown level %d (want 1-4)", statsLevel)
	}

	printVerbose("Running %d ops at %s (seed %d)\n", statsOps, opts.Name, statsSeed)
	res := runWorkload(opts, statsOps, statsSeed)

	if jsonOut {
		return printJSON(res)
	}
	reportResult(res)
	return nil
}

// reportResult prints one workload result with grouped decimal counters.
func reportResult(res workloadResult) {
	p := message.NewPrinter(language.English)
	printInfo("%s: %d ops (seed %d)\n", res.Level, res.Ops, res.Seed)
	p.Printf("  allocated blocks:  %d\n", res.Stats.AllocatedBlocks)
	p.Printf("  allocated bytes:   %d\n", res.Stats.AllocatedBytes)
	p.Printf("  free blocks:       %d\n", res.Stats.FreeBlocks)
	p.Printf("  free bytes:        %d\n", res.Stats.FreeBytes)
	p.Printf("  metadata bytes:    %d\n", res.Stats.MetaDataBytes)
	p.Printf("  header size:       %d\n", res.Stats.SizeMetaData)
	p.Printf("  break growths:     %d (%d bytes)\n", res.OpSt.GrowCalls, res.OpSt.GrowBytes)
	p.Printf("  tail extensions:   %d\n", res.OpSt.TailExtends)
	p.Printf("  splits:            %d\n", res.OpSt.Splits)
	p.Printf("  coalesces:         %d fwd, %d back\n",
		res.OpSt.CoalesceForward, res.OpSt.CoalesceBackward)
	p.Printf("  mappings:          %d mapped, %d unmapped\n",
		res.OpSt.MapCalls, res.OpSt.UnmapCalls)
}
