package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard"
)

const (
	boardKey = "quiz:leaderboard"
	seqKey   = "quiz:leaderboard:seq"

	// seqScale folds a monotonic submission sequence into the fractional
	// part of the sorted-set score: earlier submissions get a larger
	// fraction, so equal integer scores keep insertion order under
	// descending rank. Entry scores are integers, so the fraction never
	// changes relative order between different scores.
	seqScale = 1e9
)

// Store keeps the leaderboard in a Redis sorted set, entries serialized
// as JSON members. Trimming happens on every submit via ZREMRANGEBYRANK.
type Store struct {
	client *redis.Client
	max    int64
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client, max: leaderboard.MaxEntries}
}

func (s *Store) Submit(ctx context.Context, entry domain.LeaderboardEntry) error {
	seq, err := s.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return fmt.Errorf("leaderboard seq: %w", err)
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	score := float64(entry.Score) + (1 - float64(seq)/seqScale)

	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, boardKey, redis.Z{Score: score, Member: payload})
	pipe.ZRemRangeByRank(ctx, boardKey, 0, -(s.max + 1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("submit entry: %w", err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, filter leaderboard.Filter) ([]domain.LeaderboardEntry, error) {
	members, err := s.client.ZRevRange(ctx, boardKey, 0, s.max-1).Result()
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}

	out := make([]domain.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(m), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal entry: %w", err)
		}
		if filter.Matches(entry) {
			out = append(out, entry)
		}
	}
	return out, nil
}
