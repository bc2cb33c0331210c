package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"conovel/internal/pkg/storagefactory"
	"conovel/internal/service/backup"
)

var (
	restoreSnapshot string
	listSnapshots   bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the JSON collections to the configured storage",
	Long: `Upload novels.json, chapters.json, sessions.json and ai_cache.json to
<storage.prefix>/<snapshot>/ on the configured storage (local or oss).
Use --restore <snapshot> to overwrite the local collections from a snapshot.
Stop the server before restoring.`,
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().StringVar(&restoreSnapshot, "restore", "", "restore the given snapshot (e.g. 20240601-120000.000)")
	backupCmd.Flags().BoolVar(&listSnapshots, "list", false, "list existing snapshots")
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()

	store, err := storagefactory.NewStorage(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	svc := backup.NewBackupService(store, cfg.Store.DataDir, cfg.Storage.Prefix)

	switch {
	case listSnapshots:
		snapshots, err := svc.Snapshots(ctx)
		if err != nil {
			return err
		}
		return printJSON(snapshots)
	case restoreSnapshot != "":
		if err := svc.Restore(ctx, restoreSnapshot); err != nil {
			return err
		}
		log.Info().Str("data_dir", cfg.Store.DataDir).Msg("collections restored")
		return nil
	default:
		snapshot, err := svc.Backup(ctx)
		if err != nil {
			return err
		}
		fmt.Println(snapshot)
		return nil
	}
}
