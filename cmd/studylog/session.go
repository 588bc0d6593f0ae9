package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studylog/internal/cli"
	"github.com/at-ishikawa/studylog/internal/form"
	"github.com/at-ishikawa/studylog/internal/session"
)

func newAddCommand() *cobra.Command {
	var fields sessionFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a study session",
		Long:  "Log a study session. Fields not given as flags are asked for interactively.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			editor, store, err := openEditor(cfg)
			if err != nil {
				return err
			}

			draft, provided := fields.apply(cmd.Flags(), editor.NewDraft())
			draft, err = cli.NewFormCLI(cmd.InOrStdin(), cmd.OutOrStdout()).Fill(draft, provided)
			if err != nil {
				return fmt.Errorf("Fill() > %w", err)
			}
			if err := editor.Submit(draft); err != nil {
				return fmt.Errorf("editor.Submit() > %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved session %d\n", store.Len()-1)
			return nil
		},
	}
	fields.register(cmd.Flags())
	return cmd
}

func newEditCommand() *cobra.Command {
	var fields sessionFlags
	cmd := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Edit a logged session",
		Long:  "Edit the session at INDEX, as shown by the list command. Fields not given as flags are asked for with the current value as the default. Answer - to clear a text field.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			editor, _, err := openEditor(cfg)
			if err != nil {
				return err
			}

			current, err := editor.BeginEdit(index)
			if err != nil {
				return fmt.Errorf("editor.BeginEdit() > %w", err)
			}
			draft, provided := fields.apply(cmd.Flags(), current)
			draft, err = cli.NewFormCLI(cmd.InOrStdin(), cmd.OutOrStdout()).Fill(draft, provided)
			if err != nil {
				return fmt.Errorf("Fill() > %w", err)
			}
			if err := editor.Submit(draft); err != nil {
				return fmt.Errorf("editor.Submit() > %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated session %d\n", index)
			return nil
		},
	}
	fields.register(cmd.Flags())
	return cmd
}

func newDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete a logged session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			editor, store, err := openEditor(cfg)
			if err != nil {
				return err
			}

			record, err := store.At(index)
			if err != nil {
				return fmt.Errorf("store.At() > %w", err)
			}
			if !yes {
				question := fmt.Sprintf("Delete the session of %s (%s)?", record.Date, record.Content)
				ok, err := cli.NewFormCLI(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm(question)
				if err != nil {
					return fmt.Errorf("Confirm() > %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Canceled")
					return nil
				}
			}

			if err := editor.Delete(index); err != nil {
				return fmt.Errorf("editor.Delete() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %d\n", index)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	return cmd
}

func newListCommand() *cobra.Command {
	var (
		search  string
		ratings []string
		limit   int
		all     bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the latest sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ratingSet, err := session.ParseRatingSet(ratings)
			if err != nil {
				return fmt.Errorf("session.ParseRatingSet() > %w", err)
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			editor, _, err := openEditor(cfg)
			if err != nil {
				return err
			}

			query := form.Query{
				Search:  search,
				Ratings: ratingSet,
				Limit:   limit,
			}
			if all {
				query.Limit = -1
			}
			cli.RenderList(cmd.OutOrStdout(), cfg.Student.Name, editor.View(query))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "show sessions whose content contains the text")
	cmd.Flags().StringArrayVarP(&ratings, "rating", "r", nil, "show sessions with the rating; repeatable")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of sessions to show (default view.limit)")
	cmd.Flags().BoolVar(&all, "all", false, "show every matching session")
	return cmd
}
