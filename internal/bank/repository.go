package bank

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
)

// Repository is the read-only question source for the session engine.
// Packs are loaded lazily through a PackLoader and cached with TTL so a
// directory-backed loader is not re-read on every lookup. Lookup misses
// (unknown category or difficulty) yield empty slices, never errors.
type Repository struct {
	loader PackLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedPack
}

type cachedPack struct {
	pack      Pack
	expiresAt time.Time
}

// Option customizes a Repository, mainly for deterministic tests.
type Option func(*Repository)

// WithClock overrides the cache clock.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.clock = now }
}

// WithRand overrides the sampling source for reproducible shuffles.
func WithRand(rnd *rand.Rand) Option {
	return func(r *Repository) { r.rnd = rnd }
}

func NewRepository(loader PackLoader, ttl time.Duration, opts ...Option) *Repository {
	r := &Repository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedPack),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Categories lists the known pack categories.
func (r *Repository) Categories(ctx context.Context) []string {
	names, err := r.loader.Categories(ctx)
	if err != nil {
		log.Printf("list categories: %v", err)
		return nil
	}
	return names
}

// Difficulties returns the fixed difficulty vocabulary.
func (r *Repository) Difficulties() []domain.Difficulty {
	return domain.Difficulties()
}

// QuestionsFor returns the questions in one category/difficulty bucket.
// An empty difficulty returns the whole category.
func (r *Repository) QuestionsFor(ctx context.Context, category string, difficulty domain.Difficulty) []domain.Question {
	pack, err := r.pack(ctx, category)
	if err != nil {
		return nil
	}
	if difficulty == "" {
		return append([]domain.Question(nil), pack.Questions...)
	}
	var out []domain.Question
	for _, q := range pack.Questions {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out
}

// Sample draws up to count questions uniformly at random without
// replacement. Both filters given: that bucket only. Category only: all
// difficulties of the category. Neither: the whole repository. The
// result is shuffled and truncated to min(count, pool size).
func (r *Repository) Sample(ctx context.Context, count int, category string, difficulty domain.Difficulty) []domain.Question {
	var pool []domain.Question
	if category != "" {
		pool = r.QuestionsFor(ctx, category, difficulty)
	} else {
		for _, cat := range r.Categories(ctx) {
			pool = append(pool, r.QuestionsFor(ctx, cat, difficulty)...)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	r.rndMu.Lock()
	r.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	r.rndMu.Unlock()

	if count < len(pool) {
		pool = pool[:count]
	}
	return pool
}

// TotalQuestions is the sum of all bucket lengths.
func (r *Repository) TotalQuestions(ctx context.Context) int {
	total := 0
	for _, cat := range r.Categories(ctx) {
		total += len(r.QuestionsFor(ctx, cat, ""))
	}
	return total
}

func (r *Repository) pack(ctx context.Context, category string) (Pack, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[category]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.pack, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(category, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[category]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.pack, nil
		}
		r.mu.RUnlock()

		pack, err := r.loader.LoadPack(ctx, category)
		if err != nil {
			return Pack{}, err
		}

		r.mu.Lock()
		r.cache[category] = cachedPack{
			pack:      pack,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return pack, nil
	})
	if err != nil {
		return Pack{}, err
	}
	return result.(Pack), nil
}

func (r *Repository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
