package models

import (
	"time"

	"github.com/google/uuid"
)

type QuizSession struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	TotalQuestions  int        `json:"total_questions"`
	CorrectAnswers  int        `json:"correct_answers"`
	ScorePercentage float64    `json:"score_percentage"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Completed reports whether the session has been finalized. A non-nil
// completed_at is the terminal-state signal; completed sessions never change.
func (s *QuizSession) Completed() bool {
	return s.CompletedAt != nil
}

type QuizAnswer struct {
	ID               uuid.UUID `json:"id"`
	QuizSessionID    uuid.UUID `json:"quiz_session_id"`
	BirdID           uuid.UUID `json:"bird_id"`
	SelectedBirdID   uuid.UUID `json:"selected_bird_id"`
	IsCorrect        bool      `json:"is_correct"`
	TimeTakenSeconds *int      `json:"time_taken_seconds,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	// Resolved against the catalog when listing a session's answers.
	Bird         *Bird `json:"bird,omitempty"`
	SelectedBird *Bird `json:"selected_bird,omitempty"`
}

// QuizQuestion is ephemeral: built when a quiz starts, never persisted.
// Options holds the correct bird plus distractors, already shuffled.
type QuizQuestion struct {
	Bird    Bird   `json:"bird"`
	Options []Bird `json:"options"`
}

type QuizSettings struct {
	TotalQuestions   int  `json:"total_questions"`
	DifficultyLevel  *int `json:"difficulty_level,omitempty"`
	TimeLimitSeconds *int `json:"time_limit_seconds,omitempty"`
}

type SubmitAnswerRequest struct {
	BirdID           uuid.UUID `json:"bird_id"`
	SelectedBirdID   uuid.UUID `json:"selected_bird_id"`
	TimeTakenSeconds *int      `json:"time_taken_seconds,omitempty"`
}
