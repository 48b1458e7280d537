package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"birdsong-backend/internal/models"
)

// SessionService manages the lifecycle of quiz sessions and their answers.
// A session moves from in-progress to completed exactly once; completed
// sessions reject every further update.
type SessionService struct {
	store SessionStore
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

// CreateSession opens a new in-progress session with zeroed counters.
func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, totalQuestions int) (*models.QuizSession, error) {
	if totalQuestions <= 0 {
		return nil, &InvalidStateError{Message: "total questions must be positive"}
	}

	sess := &models.QuizSession{
		UserID:         userID,
		TotalQuestions: totalQuestions,
	}
	if err := s.store.InsertSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession fetches a single session by id.
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*models.QuizSession, error) {
	return s.store.GetSession(ctx, id)
}

// RecordAnswer derives is_correct and persists one answer. It deliberately
// does not touch the parent session's running score; score aggregation is a
// separate UpdateSession call so the two writes can be composed and retried
// independently.
func (s *SessionService) RecordAnswer(ctx context.Context, sessionID, birdID, selectedBirdID uuid.UUID, timeTakenSeconds *int) (*models.QuizAnswer, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Completed() {
		return nil, &InvalidStateError{Message: "quiz session is already completed"}
	}

	ans := &models.QuizAnswer{
		QuizSessionID:    sessionID,
		BirdID:           birdID,
		SelectedBirdID:   selectedBirdID,
		IsCorrect:        birdID == selectedBirdID,
		TimeTakenSeconds: timeTakenSeconds,
	}
	if err := s.store.InsertAnswer(ctx, ans); err != nil {
		return nil, err
	}
	return ans, nil
}

// UpdateSession writes a new running total and recomputes score_percentage
// from the session's own total_questions. With isCompleted it stamps
// completed_at, after which the session is frozen: a second finalize or any
// later update fails rather than silently overwriting the score or timestamp.
func (s *SessionService) UpdateSession(ctx context.Context, sessionID uuid.UUID, correctAnswers int, isCompleted bool) (*models.QuizSession, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Completed() {
		return nil, &InvalidStateError{Message: "quiz session is already completed"}
	}
	if correctAnswers < 0 || correctAnswers > sess.TotalQuestions {
		return nil, &InvalidStateError{Message: "correct answers out of range for this session"}
	}
	if correctAnswers < sess.CorrectAnswers {
		return nil, &InvalidStateError{Message: "correct answers cannot decrease"}
	}

	score := float64(correctAnswers) / float64(sess.TotalQuestions) * 100

	var completedAt *time.Time
	if isCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}

	return s.store.UpdateSessionScore(ctx, sessionID, correctAnswers, score, completedAt)
}

// ListSessions returns the user's sessions, newest first.
func (s *SessionService) ListSessions(ctx context.Context, userID uuid.UUID) ([]*models.QuizSession, error) {
	return s.store.ListSessionsByUser(ctx, userID)
}

// GetAnswers returns a session's answers in the order they were given, each
// enriched with the resolved bird and selected bird.
func (s *SessionService) GetAnswers(ctx context.Context, sessionID uuid.UUID) ([]*models.QuizAnswer, error) {
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.store.ListAnswersBySession(ctx, sessionID)
}
