package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recall/internal/migration"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <legacy-json-file>",
		Short: "Import a legacy JSON data file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			defer app.Close()

			summary, err := migration.ImportLegacyFile(cmd.Context(), args[0], app.items, app.stats, app.today)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d items and %d daily statistics entries from %s.\n",
				summary.Items, summary.DailyStats, args[0])
			return nil
		},
	}
}
