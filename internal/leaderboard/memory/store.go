package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard"
)

// Store is the in-memory implementation of leaderboard.Store and the
// default backend. Entries live for the process lifetime only.
type Store struct {
	mu      sync.RWMutex
	entries []domain.LeaderboardEntry
	max     int
}

func NewStore() *Store {
	return &Store{max: leaderboard.MaxEntries}
}

func (s *Store) Submit(_ context.Context, entry domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].Score > s.entries[j].Score
	})
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}
	return nil
}

func (s *Store) Query(_ context.Context, filter leaderboard.Filter) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LeaderboardEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
