package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recall/internal/statistics"
)

func newAnalyzeCommand() *cobra.Command {
	var hardItemLimit int
	command := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze answer history across all items",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			defer app.Close()

			items, err := app.items.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No items to analyze.")
				return nil
			}

			printReport(statistics.Calculate(items, hardItemLimit))
			return nil
		},
	}
	command.Flags().IntVar(&hardItemLimit, "hardest", 10, "how many of the hardest items to list")

	return command
}

func printReport(result statistics.Result) {
	bold := color.New(color.Bold)

	_, _ = bold.Println("Overall")
	global := result.Global
	fmt.Printf("  Items: %d (learning %d, review %d, done %d, postponed %d)\n",
		global.TotalItems, global.LearningItems, global.ReviewItems, global.DoneItems, global.PostponedItems)
	fmt.Printf("  Answers: %d correct, %d incorrect (accuracy %.1f%%)\n",
		global.CorrectAnswers, global.IncorrectAnswers, global.AccuracyRatio*100)
	fmt.Printf("  Response time: mean %.1fs, median %.1fs\n",
		global.MeanResponseSec, global.MedianResponseSec)

	_, _ = bold.Println("\nPer stage")
	for _, stage := range result.Stages {
		fmt.Printf("  Stage %d: %d items, accuracy %.1f%%, mean response %.1fs\n",
			stage.Stage, stage.ItemCount, stage.AccuracyRatio*100, stage.MeanResponseSec)
	}

	if len(result.HardItems) == 0 {
		return
	}
	_, _ = bold.Println("\nHardest items")
	for _, hard := range result.HardItems {
		question := hard.Question
		if len(question) > 40 {
			question = question[:40] + "..."
		}
		fmt.Printf("  Q%d: %s (error ratio %.0f%%, %d attempts)\n",
			hard.ID, question, hard.ErrorRatio*100, hard.Attempts)
	}
}
