package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete generation cache entries older than store.cache_max_age",
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().Duration("max-age", 0, "override store.cache_max_age (e.g. 72h)")
	_ = viper.BindPFlag("store.cache_max_age", cleanupCmd.Flags().Lookup("max-age"))
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg.Store.CacheMaxAge <= 0 {
		return errors.New("store.cache_max_age must be positive")
	}

	svc, err := openNovelService(cfg)
	if err != nil {
		return err
	}
	out := svc.CleanupResources(cmd.Context())
	if err := printJSON(out); err != nil {
		return err
	}
	if !out.Success {
		return errors.New(out.Message)
	}
	return nil
}
