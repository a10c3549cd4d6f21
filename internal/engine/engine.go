// Package engine owns the quiz session state machine: question
// selection, per-question countdown bookkeeping, answer scoring with
// streak and time bonuses, and session completion.
package engine

import (
	"context"
	"time"

	"github.com/engmhmdsamy/quiz-game/internal/bank"
	"github.com/engmhmdsamy/quiz-game/internal/domain"
	"github.com/engmhmdsamy/quiz-game/internal/results"
)

// State is the explicit session lifecycle. Starting a new session from
// any state discards the previous one.
type State int

const (
	StateIdle State = iota
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "idle"
	}
}

const (
	// DefaultQuestionCount is used when settings carry a non-positive count.
	DefaultQuestionCount = 10
	// QuestionSeconds is the per-question countdown start value.
	QuestionSeconds = 30
)

// Engine drives exactly one session at a time. It holds no timer of its
// own: the presentation layer owns the one-second tick and reports the
// remaining time on each submission. An Engine is single-owner and not
// safe for concurrent use.
type Engine struct {
	repo  *bank.Repository
	agg   *results.Aggregator
	clock func() time.Time

	state      State
	settings   domain.GameSettings
	questions  []domain.Question
	current    int
	score      int
	timeLeft   int
	answers    []domain.AnswerRecord
	stats      domain.SessionStats
	lastResult *domain.DisplayResult
}

// Option customizes an Engine, mainly for deterministic tests.
type Option func(*Engine)

// WithClock overrides the session clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.clock = now }
}

func NewEngine(repo *bank.Repository, agg *results.Aggregator, opts ...Option) *Engine {
	e := &Engine{
		repo:  repo,
		agg:   agg,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot is the read-only view of the live session handed to the
// presentation layer.
type Snapshot struct {
	State        State                 `json:"state"`
	Settings     domain.GameSettings   `json:"settings"`
	Questions    []domain.Question     `json:"questions"`
	CurrentIndex int                   `json:"currentIndex"`
	Score        int                   `json:"score"`
	TimeLeft     int                   `json:"timeLeft"`
	Answers      []domain.AnswerRecord `json:"answers"`
	Stats        domain.SessionStats   `json:"stats"`
}

// Start discards any prior session and begins a new one. The question
// pool is resolved from the settings filters, shuffled, and truncated to
// the requested count (default 10). An empty resolved pool is not an
// error: Start returns an empty slice, the engine stays idle, and the
// caller must treat that as "cannot start".
func (e *Engine) Start(ctx context.Context, settings domain.GameSettings) []domain.Question {
	count := settings.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}
	settings.QuestionCount = count

	questions := e.repo.Sample(ctx, count, settings.Category, settings.Difficulty)

	e.settings = settings
	e.questions = questions
	e.current = 0
	e.score = 0
	e.timeLeft = QuestionSeconds
	e.answers = nil
	e.stats = domain.SessionStats{}
	e.lastResult = nil

	if len(questions) == 0 {
		e.state = StateIdle
		return nil
	}

	e.state = StateActive
	e.stats.StartTime = e.clock()
	return append([]domain.Question(nil), questions...)
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// CurrentQuestion returns the question at the session cursor.
func (e *Engine) CurrentQuestion() (domain.Question, bool) {
	if e.state != StateActive || e.current >= len(e.questions) {
		return domain.Question{}, false
	}
	return e.questions[e.current], true
}

// Done reports whether every question has been answered.
func (e *Engine) Done() bool {
	return len(e.questions) > 0 && len(e.answers) == len(e.questions)
}

// Tick decrements the countdown on behalf of the presentation layer's
// one-second timer and returns the remaining seconds. Reaching zero is
// the caller's cue to submit a timeout.
func (e *Engine) Tick() int {
	if e.state == StateActive && e.timeLeft > 0 {
		e.timeLeft--
	}
	return e.timeLeft
}

// SubmitAnswer scores the selected option for the current question.
// Exactly one submission per question index is allowed.
func (e *Engine) SubmitAnswer(option string, timeLeftSeconds int) (domain.AnswerRecord, error) {
	return e.submit(option, timeLeftSeconds, false)
}

// SubmitTimeout records the no-answer path for the current question.
// A timeout is always incorrect and carries no time bonus.
func (e *Engine) SubmitTimeout() (domain.AnswerRecord, error) {
	return e.submit("", 0, true)
}

func (e *Engine) submit(option string, timeLeftSeconds int, timedOut bool) (domain.AnswerRecord, error) {
	if e.state != StateActive {
		return domain.AnswerRecord{}, domain.ErrSessionNotActive
	}
	if len(e.answers) > e.current {
		return domain.AnswerRecord{}, domain.ErrQuestionAlreadyAnswered
	}
	question := e.questions[e.current]

	correct := !timedOut && question.IsCorrect(option)
	timeBonus := timeLeftSeconds * 2
	if timeBonus < 0 {
		timeBonus = 0
	}
	awarded := 0
	if correct {
		awarded = question.Points + timeBonus
	}

	if correct {
		e.stats.CorrectAnswers++
		e.stats.Streak++
		if e.stats.Streak > e.stats.MaxStreak {
			e.stats.MaxStreak = e.stats.Streak
		}
	} else {
		e.stats.WrongAnswers++
		e.stats.Streak = 0
	}
	e.stats.TotalPoints += awarded
	e.stats.TimeBonus += timeBonus
	e.score += awarded

	record := domain.AnswerRecord{
		QuestionID:    question.ID,
		Selected:      option,
		TimedOut:      timedOut,
		CorrectOption: question.Answer,
		Correct:       correct,
		PointsAwarded: awarded,
		TimeLeft:      timeLeftSeconds,
	}
	e.answers = append(e.answers, record)
	return record, nil
}

// Advance moves the cursor to the next question and rewinds the
// countdown. Advancing past the last question is a caller bug; End is
// the right call once the final answer is in.
func (e *Engine) Advance() error {
	if e.state != StateActive {
		return domain.ErrSessionNotActive
	}
	if e.current+1 >= len(e.questions) {
		return domain.ErrNoMoreQuestions
	}
	e.current++
	e.timeLeft = QuestionSeconds
	return nil
}

// End freezes the session, hands the outcome to the result aggregator
// (which submits the leaderboard entry and evaluates achievements), and
// retains the display result until the next Start. End is idempotent:
// calling it again returns the retained result without re-submitting.
func (e *Engine) End(ctx context.Context) (domain.DisplayResult, error) {
	switch e.state {
	case StateIdle:
		return domain.DisplayResult{}, domain.ErrSessionNotActive
	case StateEnded:
		return *e.lastResult, nil
	}

	e.state = StateEnded
	e.stats.EndTime = e.clock()

	final := domain.FinalResult{
		Score:          e.score,
		TotalQuestions: len(e.questions),
		Stats:          e.stats,
		Settings:       e.settings,
		Answers:        append([]domain.AnswerRecord(nil), e.answers...),
		Date:           e.clock().Format("2006-01-02"),
	}

	display, err := e.agg.Finalize(ctx, final)
	e.lastResult = &display
	return display, err
}

// Reset returns the engine to the idle shape without touching the
// leaderboard. The last finished result stays available.
func (e *Engine) Reset() {
	e.state = StateIdle
	e.settings = domain.GameSettings{}
	e.questions = nil
	e.current = 0
	e.score = 0
	e.timeLeft = QuestionSeconds
	e.answers = nil
	e.stats = domain.SessionStats{}
}

// LastResult returns the most recent finished session's result, kept
// until the next Start overwrites it.
func (e *Engine) LastResult() (domain.DisplayResult, error) {
	if e.lastResult == nil {
		return domain.DisplayResult{}, domain.ErrNoResult
	}
	return *e.lastResult, nil
}

// Snapshot copies the live session state for display.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:        e.state,
		Settings:     e.settings,
		Questions:    append([]domain.Question(nil), e.questions...),
		CurrentIndex: e.current,
		Score:        e.score,
		TimeLeft:     e.timeLeft,
		Answers:      append([]domain.AnswerRecord(nil), e.answers...),
		Stats:        e.stats,
	}
}
