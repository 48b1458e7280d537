package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"birdsong-backend/internal/models"
)

// BirdStore is the read-only catalog boundary. Implementations return
// *DataUnavailableError when the store cannot be read.
type BirdStore interface {
	ListBirds(ctx context.Context) ([]models.Bird, error)
	ListBirdsByDifficulty(ctx context.Context, level int) ([]models.Bird, error)
}

// SessionStore persists quiz sessions and their answers. Inserts assign the
// record's id and created_at. Implementations return *NotFoundError for
// unknown ids, *PersistenceError for failed writes and *DataUnavailableError
// for failed reads. State rules (completed sessions are terminal) are
// enforced above this interface, not by implementations.
type SessionStore interface {
	InsertSession(ctx context.Context, s *models.QuizSession) error
	GetSession(ctx context.Context, id uuid.UUID) (*models.QuizSession, error)
	UpdateSessionScore(ctx context.Context, id uuid.UUID, correctAnswers int, scorePercentage float64, completedAt *time.Time) (*models.QuizSession, error)
	ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]*models.QuizSession, error)

	InsertAnswer(ctx context.Context, a *models.QuizAnswer) error
	ListAnswersBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.QuizAnswer, error)
}
