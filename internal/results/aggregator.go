package results

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard"
)

// DefaultPlayerName replaces a blank player name at submission time.
const DefaultPlayerName = "Player"

// Aggregator turns a finished session into the displayable result and
// the leaderboard entry derived from it.
type Aggregator struct {
	store leaderboard.Store
	newID func() string
}

// AggregatorOption customizes an Aggregator, mainly for tests.
type AggregatorOption func(*Aggregator)

// WithIDFunc overrides entry ID generation.
func WithIDFunc(newID func() string) AggregatorOption {
	return func(a *Aggregator) { a.newID = newID }
}

func NewAggregator(store leaderboard.Store, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		store: store,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Finalize builds the leaderboard entry for a final result, submits it,
// evaluates achievements, and assembles the results-screen view. The
// returned DisplayResult is complete even when the store submission
// fails; the error reports the failed submission.
func (a *Aggregator) Finalize(ctx context.Context, final domain.FinalResult) (domain.DisplayResult, error) {
	accuracy := AccuracyPercent(final.Stats.CorrectAnswers, final.TotalQuestions)
	earned := Evaluate(final.Stats, final.TotalQuestions)

	ids := make([]string, 0, len(earned))
	for _, ach := range earned {
		ids = append(ids, ach.ID)
	}

	name := strings.TrimSpace(final.Settings.PlayerName)
	if name == "" {
		name = DefaultPlayerName
	}

	entry := domain.LeaderboardEntry{
		ID:           a.newID(),
		PlayerName:   name,
		Score:        final.Score,
		Category:     final.Settings.Category,
		Difficulty:   final.Settings.Difficulty,
		Accuracy:     accuracy,
		BestStreak:   final.Stats.MaxStreak,
		TimeBonus:    final.Stats.TimeBonus,
		Date:         final.Date,
		Achievements: ids,
	}

	display := domain.DisplayResult{
		FinalResult:  final,
		Accuracy:     accuracy,
		Achievements: earned,
		Rating:       Rating(accuracy),
	}
	return display, a.store.Submit(ctx, entry)
}

// AccuracyPercent is the rounded percentage of correct answers. A
// zero-question session is 0%, not a division by zero.
func AccuracyPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Rating maps an accuracy percentage onto the performance tier label,
// top-down, first match wins.
func Rating(accuracy int) string {
	switch {
	case accuracy >= 90:
		return "Outstanding"
	case accuracy >= 80:
		return "Excellent"
	case accuracy >= 70:
		return "Great Job"
	case accuracy >= 60:
		return "Good Effort"
	case accuracy >= 40:
		return "Keep Trying"
	default:
		return "Practice More"
	}
}
