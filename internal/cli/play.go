package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
	"github.com/engmhmdsamy/quiz-game/internal/engine"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard"
	"github.com/engmhmdsamy/quiz-game/internal/results"
)

// feedbackPause holds the answer feedback on screen before moving on.
const feedbackPause = 2500 * time.Millisecond

// NewPlayCmd builds the interactive terminal playthrough.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		category   string
		difficulty string
		playerName string
		count      int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, category, difficulty, playerName, count)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "question category (empty = all)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium, or hard (empty = all)")
	cmd.Flags().StringVar(&playerName, "name", "", "player name for the leaderboard")
	cmd.Flags().IntVar(&count, "count", 0, "number of questions (default 10)")
	return cmd
}

func runPlay(ctx context.Context, configPath, category, difficultyRaw, playerName string, count int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	difficulty, ok := domain.ParseDifficulty(difficultyRaw)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, medium, or hard)", difficultyRaw)
	}
	if count <= 0 {
		count = cfg.Quiz.QuestionCount
	}

	repo := buildRepository(cfg)
	store := buildStore(cfg)
	eng := engine.NewEngine(repo, results.NewAggregator(store))

	questions := eng.Start(ctx, domain.GameSettings{
		Category:      category,
		Difficulty:    difficulty,
		PlayerName:    playerName,
		QuestionCount: count,
	})
	if len(questions) == 0 {
		fmt.Println("No questions available for that category and difficulty.")
		return nil
	}

	lines := readLines(ctx)

	for {
		snap := eng.Snapshot()
		question, ok := eng.CurrentQuestion()
		if !ok {
			break
		}
		printQuestion(snap, question)

		record, err := askQuestion(ctx, eng, question, lines)
		if err != nil {
			return err
		}
		printFeedback(record)

		// The pause is cancelable so a Ctrl-C mid-feedback does not
		// leave a pending continuation behind.
		select {
		case <-time.After(feedbackPause):
		case <-ctx.Done():
			return ctx.Err()
		}

		if eng.Done() {
			break
		}
		if err := eng.Advance(); err != nil {
			return err
		}
	}

	result, err := eng.End(ctx)
	if err != nil {
		log.Printf("leaderboard submission failed: %v", err)
	}
	printResult(result)

	entries, err := store.Query(ctx, leaderboard.Filter{})
	if err == nil && len(entries) > 0 {
		printBoard(entries)
	}
	return nil
}

// askQuestion runs the per-question countdown: a one-second ticker
// drives the engine clock, zero forces the timeout submission, and a
// valid letter submits with the remaining time.
func askQuestion(ctx context.Context, eng *engine.Engine, question domain.Question, lines <-chan string) (domain.AnswerRecord, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return domain.AnswerRecord{}, ctx.Err()
		case line, open := <-lines:
			if !open {
				return eng.SubmitTimeout()
			}
			option, ok := optionFor(question, line)
			if !ok {
				fmt.Printf("Answer with a letter A-%c.\n", 'A'+len(question.Options)-1)
				continue
			}
			return eng.SubmitAnswer(option, eng.Snapshot().TimeLeft)
		case <-ticker.C:
			left := eng.Tick()
			if left == 0 {
				return eng.SubmitTimeout()
			}
			if left <= 5 {
				fmt.Printf("  %d...\n", left)
			}
		}
	}
}

// readLines feeds trimmed stdin lines to the question loop; the channel
// closes on EOF.
func readLines(ctx context.Context) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case ch <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// optionFor maps an answer letter onto the question's option text.
func optionFor(question domain.Question, line string) (string, bool) {
	letter := strings.ToUpper(strings.TrimSpace(line))
	if len(letter) != 1 {
		return "", false
	}
	idx := int(letter[0] - 'A')
	if idx < 0 || idx >= len(question.Options) {
		return "", false
	}
	return question.Options[idx], true
}

func printQuestion(snap engine.Snapshot, question domain.Question) {
	fmt.Printf("\nQuestion %d/%d  |  score %d  |  streak %d\n",
		snap.CurrentIndex+1, len(snap.Questions), snap.Score, snap.Stats.Streak)
	fmt.Printf("[%s/%s, %d pts]  %s\n", question.Category, question.Difficulty, question.Points, question.Text)
	for i, option := range question.Options {
		fmt.Printf("  %c) %s\n", 'A'+i, option)
	}
	fmt.Printf("You have %d seconds.\n> ", engine.QuestionSeconds)
}

func printFeedback(record domain.AnswerRecord) {
	switch {
	case record.Correct:
		fmt.Printf("Correct! +%d points\n", record.PointsAwarded)
	case record.TimedOut:
		fmt.Printf("Time's up! The answer was: %s\n", record.CorrectOption)
	default:
		fmt.Printf("Wrong. The answer was: %s\n", record.CorrectOption)
	}
}

func printResult(result domain.DisplayResult) {
	fmt.Printf("\n===== %s =====\n", result.Rating)
	fmt.Printf("Score: %d  (accuracy %d%%)\n", result.Score, result.Accuracy)
	fmt.Printf("Correct %d / wrong %d, best streak %d, time bonus %d\n",
		result.Stats.CorrectAnswers, result.Stats.WrongAnswers,
		result.Stats.MaxStreak, result.Stats.TimeBonus)
	if len(result.Achievements) > 0 {
		fmt.Println("Achievements:")
		for _, ach := range result.Achievements {
			fmt.Printf("  %s %s: %s\n", ach.Icon, ach.Name, ach.Description)
		}
	}
}

func printBoard(entries []domain.LeaderboardEntry) {
	fmt.Println("\nLeaderboard:")
	for i, e := range entries {
		fmt.Printf("  %2d. %-20s %5d pts  %3d%%  (%s)\n",
			i+1, e.PlayerName, e.Score, e.Accuracy, e.Date)
	}
}
