package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTodayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show how many items are scheduled for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			reviewCount, err := app.items.CountReviewDueBy(ctx, app.today)
			if err != nil {
				return err
			}
			learning, err := app.items.ListDueLearning(ctx, app.cfg.Schedule.RequiredStreak)
			if err != nil {
				return err
			}

			fmt.Printf("Scheduled items for %s:\n", app.today)
			fmt.Printf("  Review items: %d\n", reviewCount)
			fmt.Printf("  Learning items: %d\n", len(learning))
			return nil
		},
	}
}

func newTomorrowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tomorrow",
		Short: "Show how many items are scheduled for tomorrow",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			tomorrow := app.today.AddDays(1)

			reviewCount, err := app.items.CountReviewDueOn(ctx, tomorrow)
			if err != nil {
				return err
			}
			learningCount, err := app.items.CountLearningCreatedOn(ctx, tomorrow)
			if err != nil {
				return err
			}

			fmt.Printf("Scheduled items for %s:\n", tomorrow)
			fmt.Printf("  Review items: %d\n", reviewCount)
			fmt.Printf("  Learning items (pre-added for tomorrow): %d\n", learningCount)
			return nil
		},
	}
}
