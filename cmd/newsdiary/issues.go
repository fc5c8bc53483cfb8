package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"newsdiary/internal/app"
	"newsdiary/internal/domain/entity"
	"newsdiary/internal/usecase/calendar"
)

func newIssuesCommand(cc *commandContext) *cobra.Command {
	issuesCmd := &cobra.Command{
		Use:     "issues",
		Aliases: []string{"issue"},
		Short:   "Manage calendar issues",
	}
	issuesCmd.AddCommand(newIssuesListCommand(cc))
	issuesCmd.AddCommand(newIssuesDatesCommand(cc))
	issuesCmd.AddCommand(newIssuesAddCommand(cc))
	issuesCmd.AddCommand(newIssuesEditCommand(cc))
	issuesCmd.AddCommand(newIssuesDeleteCommand(cc))
	return issuesCmd
}

func newIssuesListCommand(cc *commandContext) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calendar issues",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			var (
				issues []entity.CalendarIssue
				err    error
			)
			if date != "" {
				issues, err = comp.Calendar.ByDate(ctx, date)
			} else {
				issues, err = comp.Calendar.All(ctx)
			}
			if err != nil {
				return err
			}
			return printIssues(cc, cmd, issues)
		}),
	}
	cmd.Flags().StringVar(&date, "date", "", "Only list issues on this date (YYYY-MM-DD)")
	return cmd
}

func newIssuesDatesCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List the dates that have calendar issues",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			dates, err := comp.Calendar.DatesWithIssues(ctx)
			if err != nil {
				return err
			}
			return printDates(cc, cmd, dates)
		}),
	}
}

func newIssuesAddCommand(cc *commandContext) *cobra.Command {
	var date, title, content string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a calendar issue",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			issue, err := comp.Calendar.Create(ctx, date, title, content)
			if err != nil {
				return err
			}
			return printIssues(cc, cmd, []entity.CalendarIssue{issue})
		}),
	}
	cmd.Flags().StringVar(&date, "date", "", "Issue date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&title, "title", "", "Issue title")
	cmd.Flags().StringVar(&content, "content", "", "Issue body")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newIssuesEditCommand(cc *commandContext) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or content of a calendar issue",
		Args:  cobra.ExactArgs(1),
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			var in calendar.UpdateInput
			if cmd.Flags().Changed("title") {
				in.Title = &title
			}
			if cmd.Flags().Changed("content") {
				in.Content = &content
			}
			if in.Title == nil && in.Content == nil {
				return errors.New("nothing to change: pass --title or --content")
			}
			issue, err := comp.Calendar.Update(ctx, args[0], in)
			if err != nil {
				return err
			}
			return printIssues(cc, cmd, []entity.CalendarIssue{issue})
		}),
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New body")
	return cmd
}

func newIssuesDeleteCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a calendar issue",
		Args:  cobra.ExactArgs(1),
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			ok, err := comp.Calendar.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %q", calendar.ErrIssueNotFound, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted issue %s\n", args[0])
			return nil
		}),
	}
}

func printIssues(cc *commandContext, cmd *cobra.Command, issues []entity.CalendarIssue) error {
	if cc.jsonOutput() {
		return writeJSON(cmd, issues)
	}
	rows := make([][]string, 0, len(issues))
	for _, i := range issues {
		rows = append(rows, []string{i.ID, i.Date, i.Title, i.Content})
	}
	return writeTable(cmd, []string{"ID", "Date", "Title", "Content"}, rows, map[int]int{3: 60})
}
