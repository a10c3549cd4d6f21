package leaderboard

import (
	"context"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
)

// MaxEntries caps the ranked board; the lowest-ranked entries are
// evicted on overflow.
const MaxEntries = 20

// Filter narrows Query results. Zero values mean "no filter".
type Filter struct {
	Category   string
	Difficulty domain.Difficulty
}

// Matches reports whether an entry satisfies every set filter field.
func (f Filter) Matches(e domain.LeaderboardEntry) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Difficulty != "" && e.Difficulty != f.Difficulty {
		return false
	}
	return true
}

// Store is the ranked collection of past session results. Submissions
// keep the board sorted descending by score (ties keep insertion order)
// and truncated to MaxEntries. The same player may occupy several ranks.
type Store interface {
	Submit(ctx context.Context, entry domain.LeaderboardEntry) error
	Query(ctx context.Context, filter Filter) ([]domain.LeaderboardEntry, error)
}
