package domain

import "errors"

var (
	// ErrSessionNotActive is returned when an operation requires a running session.
	ErrSessionNotActive = errors.New("quiz session not active")
	// ErrQuestionAlreadyAnswered indicates a second submission for the same question index.
	ErrQuestionAlreadyAnswered = errors.New("question already answered")
	// ErrNoMoreQuestions indicates an advance past the last question.
	ErrNoMoreQuestions = errors.New("no more questions in session")
	// ErrNoResult indicates no finished session result is available yet.
	ErrNoResult = errors.New("no session result available")
	// ErrCategoryNotFound indicates an unknown question pack category.
	ErrCategoryNotFound = errors.New("question category not found")
	// ErrInvalidPack indicates a question pack that fails validation.
	ErrInvalidPack = errors.New("invalid question pack")
)
