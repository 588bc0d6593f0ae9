package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/cli"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Chart the ratings of every session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			editor, _, err := openEditor(cfg)
			if err != nil {
				return err
			}

			cli.RenderStats(cmd.OutOrStdout(), editor.Stats())
			return nil
		},
	}
}

func newReportCommand() *cobra.Command {
	var pdf bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a progress report of every session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			editor, _, err := openEditor(cfg)
			if err != nil {
				return err
			}

			files, err := cli.WriteReport(editor, cli.ReportOptions{
				StudentName:     cfg.Student.Name,
				OutputDirectory: cfg.Outputs.ReportDirectory,
				TemplatePath:    cfg.Templates.ReportTemplate,
				PDF:             pdf,
				GeneratedAt:     time.Now(),
			})
			if err != nil {
				return fmt.Errorf("cli.WriteReport() > %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", files.Markdown)
			if files.PDF != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", files.PDF)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pdf, "pdf", false, "also convert the report to PDF")
	return cmd
}
