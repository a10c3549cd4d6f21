package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/engmhmdsamy/quiz-game/internal/domain"
	"github.com/engmhmdsamy/quiz-game/internal/leaderboard"
)

// NewLeaderboardCmd prints the ranked board from the configured store.
// Only useful with the Redis backend; the in-memory board is empty in a
// fresh process.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var (
		category   string
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			parsed, ok := domain.ParseDifficulty(difficulty)
			if !ok {
				return fmt.Errorf("unknown difficulty %q (want easy, medium, or hard)", difficulty)
			}

			store := buildStore(cfg)
			entries, err := store.Query(cmd.Context(), leaderboard.Filter{
				Category:   category,
				Difficulty: parsed,
			})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No scores yet.")
				return nil
			}
			printBoard(entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "filter by difficulty")
	return cmd
}
