package domain

import "time"

// Difficulty is the fixed three-level question difficulty vocabulary.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns the full vocabulary in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty maps a raw string onto the vocabulary. Empty input is
// valid and means "no difficulty filter".
func ParseDifficulty(raw string) (Difficulty, bool) {
	switch Difficulty(raw) {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(raw), true
	}
	return "", false
}

// Question models a single MCQ with exactly one correct option.
// Answer must be a member of Options.
type Question struct {
	ID         int        `json:"id" yaml:"id"`
	Text       string     `json:"text" yaml:"text"`
	Options    []string   `json:"options" yaml:"options"`
	Answer     string     `json:"answer" yaml:"answer"`
	Points     int        `json:"points" yaml:"points"`
	Category   string     `json:"category" yaml:"-"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// IsCorrect reports whether the given option matches the answer exactly.
func (q Question) IsCorrect(option string) bool {
	return option != "" && option == q.Answer
}

// GameSettings describes one session request. Category and Difficulty
// are optional filters; a non-positive QuestionCount falls back to the
// engine default.
type GameSettings struct {
	Category      string     `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
	PlayerName    string     `json:"playerName"`
	QuestionCount int        `json:"questionCount"`
}

// AnswerRecord is appended once per question, in question order.
// TimedOut marks the no-answer path; a timed-out record is never correct.
type AnswerRecord struct {
	QuestionID    int    `json:"questionId"`
	Selected      string `json:"selected"`
	TimedOut      bool   `json:"timedOut"`
	CorrectOption string `json:"correctOption"`
	Correct       bool   `json:"correct"`
	PointsAwarded int    `json:"pointsAwarded"`
	TimeLeft      int    `json:"timeLeft"`
}

// SessionStats accumulates scoring bookkeeping for one session. Owned
// exclusively by the session engine; everything else reads copies.
type SessionStats struct {
	CorrectAnswers int       `json:"correctAnswers"`
	WrongAnswers   int       `json:"wrongAnswers"`
	TotalPoints    int       `json:"totalPoints"`
	Streak         int       `json:"streak"`
	MaxStreak      int       `json:"maxStreak"`
	TimeBonus      int       `json:"timeBonus"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
}

// FinalResult is the frozen outcome of a finished session.
type FinalResult struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Stats          SessionStats   `json:"stats"`
	Settings       GameSettings   `json:"settings"`
	Answers        []AnswerRecord `json:"answers"`
	Date           string         `json:"date"`
}

// Achievement is a named badge earned by a finished session.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// LeaderboardEntry is an immutable snapshot of one finished session's
// ranking-relevant fields. Category and Difficulty are empty when the
// session ran without the corresponding filter.
type LeaderboardEntry struct {
	ID           string     `json:"id"`
	PlayerName   string     `json:"playerName"`
	Score        int        `json:"score"`
	Category     string     `json:"category,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	Accuracy     int        `json:"accuracy"`
	BestStreak   int        `json:"bestStreak"`
	TimeBonus    int        `json:"timeBonus"`
	Date         string     `json:"date"`
	Achievements []string   `json:"achievements"`
}

// DisplayResult is what the results screen renders: the raw result plus
// derived accuracy, earned achievements, and the performance tier label.
type DisplayResult struct {
	FinalResult
	Accuracy     int           `json:"accuracy"`
	Achievements []Achievement `json:"achievementsEarned"`
	Rating       string        `json:"rating"`
}
