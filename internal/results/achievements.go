package results

import "github.com/engmhmdsamy/quiz-game/internal/domain"

// Rule pairs a badge with its predicate over final session statistics.
type Rule struct {
	domain.Achievement
	Condition func(stats domain.SessionStats, total int) bool
}

// Rules is the fixed achievement table, evaluated in order. Predicates
// are independent; a session can earn several at once.
var Rules = []Rule{
	{
		Achievement: domain.Achievement{
			ID:          "perfect_score",
			Name:        "Perfect Score!",
			Description: "Answered all questions correctly",
			Icon:        "🏆",
		},
		Condition: func(stats domain.SessionStats, total int) bool {
			return stats.CorrectAnswers == total
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "speed_demon",
			Name:        "Speed Demon",
			Description: "High time bonus earned",
			Icon:        "⚡",
		},
		Condition: func(stats domain.SessionStats, total int) bool {
			return stats.TimeBonus > 100
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "streak_master",
			Name:        "Streak Master",
			Description: "Achieved 5+ correct answers in a row",
			Icon:        "🔥",
		},
		Condition: func(stats domain.SessionStats, total int) bool {
			return stats.MaxStreak >= 5
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "knowledge_seeker",
			Name:        "Knowledge Seeker",
			Description: "Scored above 70%",
			Icon:        "🎓",
		},
		Condition: func(stats domain.SessionStats, total int) bool {
			return float64(stats.CorrectAnswers)/float64(total) >= 0.7
		},
	},
	{
		Achievement: domain.Achievement{
			ID:          "persistent",
			Name:        "Never Give Up",
			Description: "Completed the quiz despite low score",
			Icon:        "💪",
		},
		Condition: func(stats domain.SessionStats, total int) bool {
			return float64(stats.CorrectAnswers)/float64(total) < 0.5 && total >= 5
		},
	},
}

// Evaluate returns the badges earned by a finished session, in table
// order. A zero-question session earns nothing; this also keeps the
// ratio predicates away from dividing by zero.
func Evaluate(stats domain.SessionStats, total int) []domain.Achievement {
	if total == 0 {
		return nil
	}
	var earned []domain.Achievement
	for _, rule := range Rules {
		if rule.Condition(stats, total) {
			earned = append(earned, rule.Achievement)
		}
	}
	return earned
}
