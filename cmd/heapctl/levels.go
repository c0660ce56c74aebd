package main

import (
	"github.com/spf13/cobra"
)

var (
	levelsOps  int
	levelsSeed int64
)

func init() {
	cmd := newLevelsCmd()
	cmd.Flags().IntVar(&levelsOps, "ops", 10000, "Number of workload operations")
	cmd.Flags().Int64Var(&levelsSeed, "seed", 42, "Workload seed")
	rootCmd.AddCommand(cmd)
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Run the same workload at every level and compare",
		Long: `The levels command runs one seeded workload at each behavior level so the
effect of binning, splitting, coalescing, and mapping on fragmentation and
break growth is directly comparable.

Example:
  heapctl levels --ops 50000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLevels()
		},
	}
}

func runLevels() error {
	results := make([]workloadResult, 0, len(levelOptions))
	for lvl := 1; lvl <= 4; lvl++ {
		results = append(results, runWorkload(levelOptions[lvl], levelsOps, levelsSeed))
	}

	if jsonOut {
		return printJSON(results)
	}
	for i, res := range results {
		if i > 0 {
			printInfo("\n")
		}
		reportResult(res)
	}
	return nil
}
