package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"newsdiary/internal/app"
	"newsdiary/internal/domain/entity"
	artUC "newsdiary/internal/usecase/article"
)

func newArticlesCommand(cc *commandContext) *cobra.Command {
	articlesCmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "Browse and manage collected articles",
	}
	articlesCmd.AddCommand(newArticlesListCommand(cc))
	articlesCmd.AddCommand(newArticlesFavoritesCommand(cc))
	articlesCmd.AddCommand(newArticlesDatesCommand(cc))
	articlesCmd.AddCommand(newArticlesFavoriteCommand(cc))
	articlesCmd.AddCommand(newArticlesDeleteCommand(cc))
	articlesCmd.AddCommand(newArticlesPruneCommand(cc))
	return articlesCmd
}

func newArticlesListCommand(cc *commandContext) *cobra.Command {
	var category, date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles, optionally filtered by category and collection date",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			var (
				articles []entity.Article
				err      error
			)
			if category != "" {
				c, perr := entity.ParseCategory(category)
				if perr != nil {
					return perr
				}
				articles, err = comp.Articles.ListByCategory(ctx, c)
			} else {
				articles, err = comp.Articles.List(ctx)
			}
			if err != nil {
				return err
			}
			if date != "" {
				if err := entity.ValidateDate("date", date); err != nil {
					return err
				}
				articles = artUC.FilterByDate(articles, date)
			}
			return printArticles(cc, cmd, articles)
		}),
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list articles in this category")
	cmd.Flags().StringVar(&date, "date", "", "Only list articles collected on this date (YYYY-MM-DD)")
	return cmd
}

func newArticlesFavoritesCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List favorite articles",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			articles, err := comp.Articles.Favorites(ctx)
			if err != nil {
				return err
			}
			return printArticles(cc, cmd, articles)
		}),
	}
}

func newArticlesDatesCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dates",
		Short: "List the dates on which articles were collected",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			dates, err := comp.Articles.DatesWithNews(ctx)
			if err != nil {
				return err
			}
			return printDates(cc, cmd, dates)
		}),
	}
}

func newArticlesFavoriteCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle the favorite flag of an article",
		Args:  cobra.ExactArgs(1),
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			if _, err := comp.Articles.Get(ctx, args[0]); err != nil {
				return err
			}
			fav, err := comp.Articles.ToggleFavorite(ctx, args[0])
			if err != nil {
				return err
			}
			if cc.jsonOutput() {
				return writeJSON(cmd, map[string]any{"id": args[0], "is_favorite": fav})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s favorite: %s\n", args[0], yesNo(fav))
			return nil
		}),
	}
}

func newArticlesDeleteCommand(cc *commandContext) *cobra.Command {
	var (
		category string
		all      bool
		yes      bool
	)
	cmd := &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete articles and their diary entries",
		Long:  "Delete the named articles, every article of one category (--category) or the whole collection (--all --yes).",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			var (
				res artUC.DeleteResult
				err error
			)
			switch {
			case all:
				if len(args) > 0 || category != "" {
					return errors.New("--all cannot be combined with ids or --category")
				}
				if !yes {
					return errors.New("refusing to delete every article without --yes")
				}
				res, err = comp.Articles.DeleteAll(ctx)
			case category != "":
				if len(args) > 0 {
					return errors.New("--category cannot be combined with ids")
				}
				c, perr := entity.ParseCategory(category)
				if perr != nil {
					return perr
				}
				res, err = comp.Articles.DeleteByCategory(ctx, c)
			case len(args) > 0:
				res, err = comp.Articles.DeleteSelected(ctx, args)
			default:
				return errors.New("nothing to delete: pass ids, --category or --all")
			}
			if err != nil && !errors.Is(err, artUC.ErrCascadeIncomplete) {
				return err
			}
			if cc.jsonOutput() {
				if jerr := writeJSON(cmd, res); jerr != nil {
					return jerr
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d article(s)\n", res.DeletedCount)
			}
			return err
		}),
	}
	cmd.Flags().StringVar(&category, "category", "", "Delete every article in this category")
	cmd.Flags().BoolVar(&all, "all", false, "Delete every article")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm --all")
	return cmd
}

func newArticlesPruneCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove diary entries whose article no longer exists",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			removed, err := comp.Articles.PruneOrphans(ctx)
			if err != nil {
				return err
			}
			if cc.jsonOutput() {
				return writeJSON(cmd, map[string]int{"removed": removed})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d orphaned diary entr%s\n", removed, plural(removed, "y", "ies"))
			return nil
		}),
	}
}

type articleRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	CollectedAt string `json:"collected_at"`
	Source      string `json:"source"`
	IsFavorite  bool   `json:"is_favorite"`
}

func printArticles(cc *commandContext, cmd *cobra.Command, articles []entity.Article) error {
	if cc.jsonOutput() {
		out := make([]articleRow, 0, len(articles))
		for _, a := range articles {
			out = append(out, articleRow{
				ID:          a.ID,
				Title:       a.Title,
				URL:         a.URL,
				Category:    a.Category.String(),
				CollectedAt: a.CollectedAt.String(),
				Source:      a.Source,
				IsFavorite:  a.IsFavorite,
			})
		}
		return writeJSON(cmd, out)
	}

	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{a.ID, a.Category.String(), a.Title, a.CollectedDate(), yesNo(a.IsFavorite)})
	}
	return writeTable(cmd, []string{"ID", "Category", "Title", "Collected", "Fav"}, rows, map[int]int{2: 60})
}

func printDates(cc *commandContext, cmd *cobra.Command, dates []string) error {
	if cc.jsonOutput() {
		return writeJSON(cmd, dates)
	}
	rows := make([][]string, 0, len(dates))
	for i, d := range dates {
		rows = append(rows, []string{strconv.Itoa(i + 1), d})
	}
	return writeTable(cmd, []string{"#", "Date"}, rows, nil)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
