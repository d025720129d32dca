package bb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bulkbuddy/internal/service"
)

var (
	exportOut string
	importIn  string
	clearYes  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as a flat JSON snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			snapshot, err := service.ExportSnapshot(sqldb)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("encode snapshot: %w", err)
			}
			if exportOut == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(exportOut, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d keys to %s\n", len(snapshot), exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSON snapshot (validated before anything is written)",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		var payload map[string]string
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ImportSnapshot(sqldb, payload); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d keys\n", len(payload))
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to delete all data without --yes")
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearAll(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, clearCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Snapshot file to import")
	_ = importCmd.MarkFlagRequired("in")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm deletion")
}
