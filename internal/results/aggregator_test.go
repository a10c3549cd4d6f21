package results

import (
	"context"
	"testing"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard/memory"
)

func TestFinalizeBuildsEntryAndSubmits(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	agg := NewAggregator(store, WithIDFunc(func() string { return "entry-1" }))

	final := domain.FinalResult{
		Score:          185,
		TotalQuestions: 10,
		Stats: domain.SessionStats{
			CorrectAnswers: 8,
			WrongAnswers:   2,
			MaxStreak:      6,
			TimeBonus:      120,
		},
		Settings: domain.GameSettings{
			Category:   "science",
			Difficulty: domain.DifficultyMedium,
			PlayerName: "Alice",
		},
		Date: "2026-08-28",
	}

	display, err := agg.Finalize(ctx, final)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if display.Accuracy != 80 || display.Rating != "Excellent" {
		t.Fatalf("unexpected display result: accuracy=%d rating=%s", display.Accuracy, display.Rating)
	}

	entries, err := store.Query(ctx, leaderboard.Filter{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.ID != "entry-1" || entry.PlayerName != "Alice" || entry.Score != 185 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Accuracy != 80 || entry.BestStreak != 6 || entry.TimeBonus != 120 {
		t.Fatalf("unexpected derived fields: %+v", entry)
	}
	// speed_demon and streak_master and knowledge_seeker apply at 8/10.
	want := []string{"speed_demon", "streak_master", "knowledge_seeker"}
	if len(entry.Achievements) != len(want) {
		t.Fatalf("expected achievements %v, got %v", want, entry.Achievements)
	}
	for i, id := range want {
		if entry.Achievements[i] != id {
			t.Fatalf("expected achievements %v, got %v", want, entry.Achievements)
		}
	}
}

func TestAccuracyPercentGuardsZero(t *testing.T) {
	if got := AccuracyPercent(0, 0); got != 0 {
		t.Fatalf("expected 0%% for empty session, got %d", got)
	}
	if got := AccuracyPercent(1, 3); got != 33 {
		t.Fatalf("expected rounded 33%%, got %d", got)
	}
	if got := AccuracyPercent(2, 3); got != 67 {
		t.Fatalf("expected rounded 67%%, got %d", got)
	}
}

func TestRatingTiers(t *testing.T) {
	cases := []struct {
		accuracy int
		want     string
	}{
		{100, "Outstanding"},
		{90, "Outstanding"},
		{89, "Excellent"},
		{80, "Excellent"},
		{79, "Great Job"},
		{70, "Great Job"},
		{69, "Good Effort"},
		{60, "Good Effort"},
		{59, "Keep Trying"},
		{40, "Keep Trying"},
		{39, "Practice More"},
		{0, "Practice More"},
	}
	for _, tc := range cases {
		if got := Rating(tc.accuracy); got != tc.want {
			t.Fatalf("Rating(%d) = %q, want %q", tc.accuracy, got, tc.want)
		}
	}
}
