package cli

import (
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/engmhmdsamy/quiz-game/internal/bank"
	"github.com/engmhmdsamy/quiz-game/internal/config"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard"
	memoryboard "github.com/engmhmdsamy/quiz-game/internal/leaderboard/memory"
	redisboard "github.com/engmhmdsamy/quiz-game/internal/leaderboard/redis"
)

// loadConfig reads the config file; a missing file yields the zero
// config so the game runs with built-in defaults.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Config{}, nil
		}
		return config.Config{}, err
	}
	return cfg, nil
}

// buildRepository picks the pack source: a configured pack directory, or
// the packs embedded in the binary.
func buildRepository(cfg config.Config) *bank.Repository {
	var loader bank.PackLoader = bank.NewEmbedLoader()
	if cfg.Quiz.PacksDir != "" {
		loader = bank.NewDirLoader(cfg.Quiz.PacksDir)
	}
	ttl := config.TTLDuration(cfg.Quiz.CacheTTL, 10*time.Minute)
	return bank.NewRepository(loader, ttl)
}

// buildStore picks the leaderboard backend: Redis when an address is
// configured, the in-memory board otherwise.
func buildStore(cfg config.Config) leaderboard.Store {
	if cfg.Redis.Addr == "" {
		return memoryboard.NewStore()
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return redisboard.NewStore(client)
}
