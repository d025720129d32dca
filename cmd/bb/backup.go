package bb

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/service"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, list, and restore database backups",
}

var (
	backupDir   string
	backupForce bool
)

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Copy the database to a timestamped backup with a checksum",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		dir, err := resolveBackupDir(path)
		if err != nil {
			return err
		}
		out := filepath.Join(dir, fmt.Sprintf("bulkbuddy-%s.db", time.Now().Format("20060102-150405")))
		info, err := service.CreateBackup(path, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d bytes, sha256 %s)\n", info.Path, info.SizeBytes, info.Checksum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		dir, err := resolveBackupDir(path)
		if err != nil {
			return err
		}
		backups, err := service.ListBackups(dir)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups.")
			return nil
		}
		for _, b := range backups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d bytes\n",
				b.CreatedAt.Format("2006-01-02 15:04:05"), b.Path, b.SizeBytes)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Restore the database from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := service.RestoreBackup(args[0], path, backupForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", path)
		return nil
	},
}

func resolveBackupDir(dbPath string) (string, error) {
	if backupDir != "" {
		return backupDir, nil
	}
	return filepath.Join(filepath.Dir(dbPath), "backups"), nil
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCmd.PersistentFlags().StringVar(&backupDir, "dir", "", "Backup directory (default <db dir>/backups)")
	backupRestoreCmd.Flags().BoolVar(&backupForce, "force", false, "Overwrite an existing database")
}
