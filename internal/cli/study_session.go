// Package cli provides the interactive study session and its terminal I/O.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/recall/internal/item"
	"github.com/at-ishikawa/recall/internal/scheduler"
	"github.com/at-ishikawa/recall/internal/store"
)

// ErrPaused is returned when the learner pauses the session; progress has
// already been flushed when it is raised.
var ErrPaused = errors.New("session paused")

type roundKind int

const (
	roundLearning roundKind = iota
	roundReview
)

// StudySessionCLI drives the interactive study session: repeated rounds of
// learning then review until no eligible items remain for today.
type StudySessionCLI struct {
	items   store.ItemRepository
	stats   store.StatsRepository
	engine  *scheduler.Engine
	planner scheduler.Planner
	speaker Speaker
	today   item.Date

	showHistory  bool
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	faint        *color.Color

	elapsedSeconds float64
	previousID     int64
}

// NewStudySessionCLI creates the interactive session for the given study
// date.
func NewStudySessionCLI(
	items store.ItemRepository,
	stats store.StatsRepository,
	engine *scheduler.Engine,
	planner scheduler.Planner,
	speaker Speaker,
	today item.Date,
	showHistory bool,
) *StudySessionCLI {
	return &StudySessionCLI{
		items:        items,
		stats:        stats,
		engine:       engine,
		planner:      planner,
		speaker:      speaker,
		today:        today,
		showHistory:  showHistory,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		faint:        color.New(color.Faint),
	}
}

// ElapsedSeconds returns the study seconds accumulated for today, including
// time loaded from earlier runs on the same date.
func (r *StudySessionCLI) ElapsedSeconds() float64 {
	return r.elapsedSeconds
}

// Run executes rounds of learning then review until both due sets are empty.
// Postponement flags are re-evaluated before every round, so demotions and
// promotions are picked up immediately.
func (r *StudySessionCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	elapsed, err := r.stats.GetElapsed(ctx, r.today)
	if err != nil {
		return fmt.Errorf("stats.GetElapsed() > %w", err)
	}
	r.elapsedSeconds = elapsed

	if err := r.items.ResetStalePostponed(ctx, r.today); err != nil {
		return fmt.Errorf("items.ResetStalePostponed() > %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.stdoutWriter, "Received interrupt signal, exiting...")
			return r.flushElapsed(ctx)
		default:
		}

		plan, err := r.buildPlan(ctx)
		if err != nil {
			return err
		}
		if len(plan.Learning) == 0 && len(plan.Review) == 0 {
			break
		}

		if err := r.runRound(ctx, plan.Learning, roundLearning); err != nil {
			return err
		}
		if err := r.runRound(ctx, plan.Review, roundReview); err != nil {
			return err
		}
	}

	fmt.Fprintln(r.stdoutWriter, "\nAll learning and review items completed for today!")
	if r.showHistory {
		if err := r.printHistory(ctx); err != nil {
			return err
		}
	}
	return r.flushElapsed(ctx)
}

// buildPlan recomputes the due sets and persists the postponement decisions
// of this scheduling pass.
func (r *StudySessionCLI) buildPlan(ctx context.Context) (scheduler.Plan, error) {
	learning, err := r.items.ListDueLearning(ctx, r.planner.RequiredStreak)
	if err != nil {
		return scheduler.Plan{}, fmt.Errorf("items.ListDueLearning() > %w", err)
	}
	review, err := r.items.ListDueReview(ctx, r.today)
	if err != nil {
		return scheduler.Plan{}, fmt.Errorf("items.ListDueReview() > %w", err)
	}

	plan := r.planner.Build(append(learning, review...), r.today)
	if err := r.items.SetPostponed(ctx, plan.Postponed); err != nil {
		return scheduler.Plan{}, fmt.Errorf("items.SetPostponed() > %w", err)
	}
	return plan, nil
}

func (r *StudySessionCLI) runRound(ctx context.Context, ids []int64, kind roundKind) error {
	shuffled := append([]int64{}, ids...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, id := range shuffled {
		select {
		case <-ctx.Done():
			return r.flushElapsed(ctx)
		default:
		}

		if err := r.presentItem(ctx, id, kind); err != nil {
			return err
		}
	}
	return nil
}

func (r *StudySessionCLI) presentItem(ctx context.Context, id int64, kind roundKind) error {
	it, err := r.items.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		slog.Default().Warn("due item disappeared from the store, skipping",
			slog.Int64("itemID", id),
		)
		return nil
	}
	if err != nil {
		return err
	}

	prefix := "[Q]"
	if kind == roundReview {
		prefix = "[Review]"
	}
	fmt.Fprintln(r.stdoutWriter)
	_, _ = r.bold.Fprintf(r.stdoutWriter, "%s %s\n", prefix, it.Question)
	fmt.Fprint(r.stdoutWriter, "> ")

	startTime := time.Now()
	input, err := r.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	responseSeconds := time.Since(startTime).Seconds()
	r.elapsedSeconds += responseSeconds

	switch ClassifyInput(input) {
	case DirectivePause:
		fmt.Fprintln(r.stdoutWriter, "Pausing session. Your progress has been saved.")
		if err := r.flushElapsed(ctx); err != nil {
			return err
		}
		return ErrPaused
	case DirectiveEditCurrent:
		return r.editItem(ctx, id)
	case DirectiveEditPrevious:
		if r.previousID == 0 {
			fmt.Fprintln(r.stdoutWriter, "No previous item to edit.")
			return nil
		}
		return r.editItem(ctx, r.previousID)
	}

	correct := IsCorrectAnswer(input, it.Answer)
	transition := r.engine.Apply(it, correct, responseSeconds, r.today)

	// The mutation must be durable before the next item is processed.
	if err := r.items.Update(ctx, it); err != nil {
		return fmt.Errorf("items.Update() > %w", err)
	}

	r.printFeedback(input, it, correct, transition)
	r.speaker.Speak(ctx, it.Answer)
	r.waitForEnter()
	r.previousID = id
	return nil
}

func (r *StudySessionCLI) printFeedback(input string, it *item.Item, correct bool, transition scheduler.Transition) {
	if !correct {
		fmt.Fprint(r.stdoutWriter, "❌ ")
		color.Red("Incorrect.")
		fmt.Fprintln(r.stdoutWriter, HighlightDifferences(strings.TrimSpace(input), it.Answer))
		return
	}

	fmt.Fprint(r.stdoutWriter, "✅ ")
	switch {
	case transition.Completed:
		color.Green("Correct! This item is fully memorized.")
	case transition.Promoted:
		color.Green("Correct! Promoted to review, next review on %s.", it.NextReviewDate)
	case transition.IntervalDays > 0:
		color.Green("Correct! Next review scheduled in %d days.", transition.IntervalDays)
	default:
		color.Green("Correct! (%d/%d)", it.CorrectStreak, r.engine.RequiredStreak())
	}
	fmt.Fprintf(r.stdoutWriter, "Correct answer: %s\n", it.Answer)
}

func (r *StudySessionCLI) editItem(ctx context.Context, id int64) error {
	it, err := r.items.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(r.stdoutWriter, "Item %d no longer exists.\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(r.stdoutWriter, "\nEditing item %d\n", id)
	fmt.Fprintf(r.stdoutWriter, "Current question: %s\n", it.Question)
	question, err := r.promptLine("New question (leave blank to keep current): ")
	if err != nil {
		return err
	}
	if question == "" {
		question = it.Question
	}

	fmt.Fprintf(r.stdoutWriter, "Current answer: %s\n", it.Answer)
	answer, err := r.promptLine("New answer (leave blank to keep current): ")
	if err != nil {
		return err
	}
	if answer == "" {
		answer = it.Answer
	}

	if err := r.items.UpdateText(ctx, id, question, answer); err != nil {
		return fmt.Errorf("items.UpdateText() > %w", err)
	}
	fmt.Fprintf(r.stdoutWriter, "Item %d updated.\n", id)
	return nil
}

func (r *StudySessionCLI) printHistory(ctx context.Context) error {
	items, err := r.items.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("items.ListAll() > %w", err)
	}

	fmt.Fprintln(r.stdoutWriter, "\nAnswer history:")
	for _, it := range items {
		question := it.Question
		if len(question) > 30 {
			question = question[:30] + "..."
		}
		symbols := make([]string, 0, len(it.History))
		for _, outcome := range it.History {
			symbols = append(symbols, string(outcome))
		}
		fmt.Fprintf(r.stdoutWriter, "Q%d: %s\n", it.ID, question)
		_, _ = r.faint.Fprintf(r.stdoutWriter, "  History: %s\n", strings.Join(symbols, ""))
	}
	return nil
}

func (r *StudySessionCLI) promptLine(prompt string) (string, error) {
	fmt.Fprint(r.stdoutWriter, prompt)
	line, err := r.stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (r *StudySessionCLI) waitForEnter() {
	fmt.Fprint(r.stdoutWriter, "Press Enter to continue...")
	_, _ = r.stdinReader.ReadString('\n')
}

// flushElapsed persists the elapsed-time accumulator. It is called on every
// exit path so the counter survives pauses and interrupts.
func (r *StudySessionCLI) flushElapsed(ctx context.Context) error {
	// The flush must still reach the store after an interrupt.
	ctx = context.WithoutCancel(ctx)
	if err := r.stats.SetElapsed(ctx, r.today, r.elapsedSeconds); err != nil {
		return fmt.Errorf("stats.SetElapsed() > %w", err)
	}
	return nil
}
