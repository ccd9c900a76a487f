package cmd

import (
	"fmt"
	"strings"

	"github.com/localnerve/jam-build-appstore/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and partial indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%s)\n", cfg.DBType)
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the tables and columns gorm sees in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := db.Migrator().GetTables()
		if err != nil {
			return fmt.Errorf("failed to list tables: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, table := range tables {
			fmt.Fprintf(out, "\n=== Table: %s ===\n", table)

			if cfg.IsSQLite() {
				var ddl string
				if err := db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&ddl).Error; err != nil {
					return err
				}
				fmt.Fprintln(out, ddl)
				continue
			}

			columns, err := db.Migrator().ColumnTypes(table)
			if err != nil {
				return fmt.Errorf("failed to read columns of %s: %w", table, err)
			}
			for _, col := range columns {
				var flags []string
				if nullable, ok := col.Nullable(); ok && !nullable {
					flags = append(flags, "NOT NULL")
				}
				if pk, ok := col.PrimaryKey(); ok && pk {
					flags = append(flags, "PRIMARY KEY")
				}
				fmt.Fprintf(out, "  %-20s %-16s %s\n", col.Name(), col.DatabaseTypeName(), strings.Join(flags, " "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, schemaCmd)
}
