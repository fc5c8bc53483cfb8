package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"newsdiary/internal/app"
	"newsdiary/internal/domain/entity"
)

func newCollectCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "collect [category...]",
		Short: "Scrape headlines and merge them into the article store",
		Long:  "Scrape the given categories (all six when none are named) and append new articles, skipping stories already stored.",
		RunE: cc.run(func(ctx context.Context, cmd *cobra.Command, comp *app.Components, args []string) error {
			categories, err := entity.ParseCategories(args)
			if err != nil {
				return err
			}

			scraped, res, err := comp.Collect.Collect(ctx, categories)
			if err != nil {
				return fmt.Errorf("collect: %w", err)
			}

			out := res.Summarize(scraped)
			if cc.jsonOutput() {
				return writeJSON(cmd, out)
			}

			order := categories
			if len(order) == 0 {
				order = entity.AllCategories()
			}
			rows := make([][]string, 0, len(order))
			for _, c := range order {
				rows = append(rows, []string{c.String(), strconv.Itoa(out.PerCategory[c.String()])})
			}
			if err := writeTable(cmd, []string{"Category", "Scraped"}, rows, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d, duplicates %d, total %d\n", out.Added, out.Duplicates, out.Total)
			if len(out.FailedCategories) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "failed: %v\n", out.FailedCategories)
			}
			return nil
		}),
	}
}
