package cmd

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print global statistics of the data directory",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, err := openNovelService(GetConfig())
	if err != nil {
		return err
	}
	stats, err := svc.Statistics(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(stats)
}
