package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"newsdiary/internal/app"
	"newsdiary/internal/domain/entity"
	diaryUC "newsdiary/internal/usecase/diary"
)

func newDiaryCommand(cc *commandContext) *cobra.Command {
	diaryCmd := &cobra.Command{
		Use:   "diary",
		Short: "Read and write diary entries about articles",
	}
	diaryCmd.AddCommand(newDiaryListCommand(cc))
	diaryCmd.AddCommand(newDiaryShowCommand(cc))
	diaryCmd.AddCommand(newDiaryWriteCommand(cc))
	diaryCmd.AddCommand(newDiaryEditCommand(cc))
	diaryCmd.AddCommand(newDiaryDeleteCommand(cc))
	return diaryCmd
}

func newDiaryListCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every diary entry",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			entries, err := comp.Diary.List(ctx)
			if err != nil {
				return err
			}
			if cc.jsonOutput() {
				return writeJSON(cmd, entries)
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.ID, e.ArticleID, e.Summary, e.CreatedAt.Date()})
			}
			return writeTable(cmd, []string{"ID", "Article", "Summary", "Created"}, rows, map[int]int{2: 50})
		}),
	}
}

func newDiaryShowCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <article-id>",
		Short: "Show the diary entry for an article",
		Args:  cobra.ExactArgs(1),
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			entry, ok, err := comp.Diary.GetByArticle(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: article %q", diaryUC.ErrEntryNotFound, args[0])
			}
			return printEntry(cc, cmd, entry)
		}),
	}
}

func newDiaryWriteCommand(cc *commandContext) *cobra.Command {
	var in diaryUC.EntryInput
	cmd := &cobra.Command{
		Use:   "write <article-id>",
		Short: "Write or replace the diary entry for an article",
		Args:  cobra.ExactArgs(1),
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			if _, err := comp.Articles.Get(ctx, args[0]); err != nil {
				return err
			}
			entry, err := comp.Diary.CreateEntry(ctx, args[0], in)
			if err != nil {
				return err
			}
			return printEntry(cc, cmd, entry)
		}),
	}
	cmd.Flags().StringVar(&in.Content, "content", "", "Entry body")
	cmd.Flags().StringVar(&in.Summary, "summary", "", "One-line summary")
	cmd.Flags().StringVar(&in.Opinion, "opinion", "", "Operator opinion")
	return cmd
}

func newDiaryEditCommand(cc *commandContext) *cobra.Command {
	var content, summary, opinion string
	cmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Change some fields of a diary entry",
		Args:  cobra.ExactArgs(1),
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			var in diaryUC.UpdateInput
			if cmd.Flags().Changed("content") {
				in.Content = &content
			}
			if cmd.Flags().Changed("summary") {
				in.Summary = &summary
			}
			if cmd.Flags().Changed("opinion") {
				in.Opinion = &opinion
			}
			if in.Content == nil && in.Summary == nil && in.Opinion == nil {
				return errors.New("nothing to change: pass --content, --summary or --opinion")
			}
			entry, err := comp.Diary.Update(ctx, args[0], in)
			if err != nil {
				return err
			}
			return printEntry(cc, cmd, entry)
		}),
	}
	cmd.Flags().StringVar(&content, "content", "", "Entry body")
	cmd.Flags().StringVar(&summary, "summary", "", "One-line summary")
	cmd.Flags().StringVar(&opinion, "opinion", "", "Operator opinion")
	return cmd
}

func newDiaryDeleteCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <article-id>",
		Short: "Delete the diary entry for an article",
		Args:  cobra.ExactArgs(1),
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			ok, err := comp.Diary.DeleteByArticle(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: article %q", diaryUC.ErrEntryNotFound, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted diary entry for %s\n", args[0])
			return nil
		}),
	}
}

func printEntry(cc *commandContext, cmd *cobra.Command, e entity.DiaryEntry) error {
	if cc.jsonOutput() {
		return writeJSON(cmd, e)
	}
	rows := [][]string{
		{"ID", e.ID},
		{"Article", e.ArticleID},
		{"Summary", e.Summary},
		{"Content", e.Content},
		{"Opinion", e.Opinion},
		{"Created", e.CreatedAt.String()},
		{"Updated", e.UpdatedAt.String()},
	}
	return writeTable(cmd, []string{"Field", "Value"}, rows, map[int]int{1: 80})
}
