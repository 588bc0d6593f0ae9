package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/database"
	"github.com/at-ishikawa/studylog/internal/datasync"
	"github.com/at-ishikawa/studylog/internal/session"
	"github.com/at-ishikawa/studylog/schemas"
)

func newDBCommand() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Mirror the sessions in a MySQL database",
	}

	dbCmd.AddCommand(
		newDBMigrateCommand(),
		newDBExportCommand(),
		newDBImportCommand(),
	)
	return dbCmd
}

func newDBMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := database.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.Migrate(db, schemas.Migrations, schemas.MigrationsDir); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
			return nil
		},
	}
}

func newDBExportCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the sessions to the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			store, err := session.Open(cfg.Storage.DataFile)
			if err != nil {
				return fmt.Errorf("open sessions: %w", err)
			}

			db, err := database.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() { _ = db.Close() }()

			exporter := datasync.NewExporter(store, session.NewDBRepository(db), cmd.OutOrStdout())
			result, err := exporter.Export(cmd.Context(), datasync.SyncOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("export sessions: %w", err)
			}
			printSyncSummary(cmd, "Export", result, dryRun)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	return cmd
}

func newDBImportCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the sessions with the ones in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			store, err := session.Open(cfg.Storage.DataFile)
			if err != nil {
				return fmt.Errorf("open sessions: %w", err)
			}

			db, err := database.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer func() { _ = db.Close() }()

			importer := datasync.NewImporter(store, session.NewDBRepository(db), cmd.OutOrStdout())
			result, err := importer.Import(cmd.Context(), datasync.SyncOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("import sessions: %w", err)
			}
			printSyncSummary(cmd, "Import", result, dryRun)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the data file")
	return cmd
}

func printSyncSummary(cmd *cobra.Command, title string, result *datasync.SyncResult, dryRun bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s Summary:\n", title)
	if dryRun {
		fmt.Fprintln(out, "  (dry-run mode, no changes made)")
	}
	fmt.Fprintf(out, "  Sessions:  %d new, %d updated, %d deleted, %d unchanged\n", result.New, result.Updated, result.Deleted, result.Unchanged)
}
