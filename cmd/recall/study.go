package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recall/internal/cli"
	"github.com/at-ishikawa/recall/internal/item"
)

func newStudyCommand() *cobra.Command {
	var importFile string
	command := &cobra.Command{
		Use:   "study",
		Short: "Run today's interactive learning and review session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			if importFile != "" {
				pairs, err := cli.ReadPairsFile(importFile)
				if err != nil {
					return err
				}
				if err := insertPairs(ctx, app, pairs); err != nil {
					return err
				}
				fmt.Printf("Added %d question/answer pairs from %s\n\n", len(pairs), importFile)
			}

			fmt.Println("Spaced repetition: memorize with the forgetting curve")
			fmt.Println("\nCurrent settings:")
			fmt.Printf("  Forgetting schedule (days): %v\n", app.cfg.Schedule.Intervals)
			fmt.Printf("  Required correct streak: %d\n", app.cfg.Schedule.RequiredStreak)
			fmt.Printf("  Daily workload limit: %d\n", app.cfg.Schedule.DailyLimit)

			reviewCount, err := app.items.CountReviewDueBy(ctx, app.today)
			if err != nil {
				return fmt.Errorf("items.CountReviewDueBy() > %w", err)
			}
			fmt.Printf("\nYou have %d item(s) scheduled for review today (%s).\n", reviewCount, app.today)

			session := cli.NewStudySessionCLI(
				app.items,
				app.stats,
				app.engine,
				app.planner,
				cli.NewSpeaker(app.cfg.Session.SpeakCommand),
				app.today,
				app.cfg.Session.ShowHistory,
			)
			err = session.Run(ctx)
			if err != nil && !errors.Is(err, cli.ErrPaused) {
				return err
			}

			fmt.Printf("\nTime spent today: %d min\n", int(session.ElapsedSeconds())/60)
			if errors.Is(err, cli.ErrPaused) {
				fmt.Println("Session paused. Run the study command again to continue.")
				return nil
			}
			fmt.Println("Today's memorization and review are complete!")
			return nil
		},
	}
	command.Flags().StringVar(&importFile, "import", "", "question/answer pair file to add before the session")

	return command
}

func insertPairs(ctx context.Context, app *appContext, pairs []cli.Pair) error {
	items := make([]item.Item, 0, len(pairs))
	for _, pair := range pairs {
		items = append(items, item.New(pair.Question, pair.Answer, app.today))
	}
	return app.items.Insert(ctx, items)
}
