package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/recall/internal/cli"
)

func newAddCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "add [file]",
		Short: "Add question/answer pairs from a file or interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()

			var pairs []cli.Pair
			if len(args) == 1 {
				pairs, err = cli.ReadPairsFile(args[0])
				if err != nil {
					return err
				}
			} else {
				pairs, err = promptPairs()
				if err != nil {
					return err
				}
			}
			if len(pairs) == 0 {
				fmt.Println("Nothing to add.")
				return nil
			}

			if err := insertPairs(ctx, app, pairs); err != nil {
				return err
			}
			fmt.Printf("Added %d question/answer pairs.\n", len(pairs))
			return nil
		},
	}

	return command
}

// promptPairs reads question/answer pairs interactively until an empty
// question finishes the input.
func promptPairs() ([]cli.Pair, error) {
	fmt.Println("Enter new question/answer pairs. Press Enter without typing a question to finish.")
	reader := bufio.NewReader(os.Stdin)

	var pairs []cli.Pair
	for {
		fmt.Print("Question: ")
		question, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("error reading question: %w", err)
		}
		question = strings.TrimSpace(question)
		if question == "" {
			return pairs, nil
		}

		fmt.Print("Answer: ")
		answer, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("error reading answer: %w", err)
		}
		pairs = append(pairs, cli.Pair{
			Question: question,
			Answer:   strings.TrimSpace(answer),
		})
	}
}

func newDeleteTodayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-today",
		Short: "Delete all items created on the current study date",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			defer app.Close()

			deleted, err := app.items.DeleteCreatedOn(cmd.Context(), app.today)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d items created on %s.\n", deleted, app.today)
			return nil
		},
	}
}
