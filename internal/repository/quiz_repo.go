package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"birdsong-backend/internal/models"
	"birdsong-backend/internal/quiz"
)

// QuizRepo persists quiz sessions and answers. Answers are append-only;
// sessions are updated in place until completed_at is set.
type QuizRepo struct {
	pool *pgxpool.Pool
}

func NewQuizRepo(pool *pgxpool.Pool) *QuizRepo {
	return &QuizRepo{pool: pool}
}

func (r *QuizRepo) InsertSession(ctx context.Context, s *models.QuizSession) error {
	s.ID = uuid.New()
	query := `INSERT INTO quiz_sessions (id, user_id, total_questions, correct_answers, score_percentage)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, s.TotalQuestions, s.CorrectAnswers, s.ScorePercentage,
	).Scan(&s.CreatedAt)
	if err != nil {
		return &quiz.PersistenceError{Op: "create quiz session", Err: err}
	}
	return nil
}

const sessionColumns = `id, user_id, total_questions, correct_answers, score_percentage, completed_at, created_at`

func (r *QuizRepo) GetSession(ctx context.Context, id uuid.UUID) (*models.QuizSession, error) {
	s := &models.QuizSession{}
	query := `SELECT ` + sessionColumns + ` FROM quiz_sessions WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.TotalQuestions, &s.CorrectAnswers, &s.ScorePercentage, &s.CompletedAt, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &quiz.NotFoundError{Resource: "quiz session", ID: id}
	}
	if err != nil {
		return nil, &quiz.DataUnavailableError{Op: "get quiz session", Err: err}
	}
	return s, nil
}

func (r *QuizRepo) UpdateSessionScore(ctx context.Context, id uuid.UUID, correctAnswers int, scorePercentage float64, completedAt *time.Time) (*models.QuizSession, error) {
	s := &models.QuizSession{}
	query := `UPDATE quiz_sessions
		SET correct_answers = $1, score_percentage = $2, completed_at = COALESCE($3, completed_at)
		WHERE id = $4
		RETURNING ` + sessionColumns

	err := r.pool.QueryRow(ctx, query, correctAnswers, scorePercentage, completedAt, id).Scan(
		&s.ID, &s.UserID, &s.TotalQuestions, &s.CorrectAnswers, &s.ScorePercentage, &s.CompletedAt, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &quiz.NotFoundError{Resource: "quiz session", ID: id}
	}
	if err != nil {
		return nil, &quiz.PersistenceError{Op: "update quiz session", Err: err}
	}
	return s, nil
}

func (r *QuizRepo) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]*models.QuizSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM quiz_sessions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, &quiz.DataUnavailableError{Op: "list quiz sessions", Err: err}
	}
	defer rows.Close()

	var sessions []*models.QuizSession
	for rows.Next() {
		s := &models.QuizSession{}
		err := rows.Scan(&s.ID, &s.UserID, &s.TotalQuestions, &s.CorrectAnswers, &s.ScorePercentage, &s.CompletedAt, &s.CreatedAt)
		if err != nil {
			return nil, &quiz.DataUnavailableError{Op: "scan quiz session", Err: err}
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &quiz.DataUnavailableError{Op: "read quiz sessions", Err: err}
	}
	return sessions, nil
}

func (r *QuizRepo) InsertAnswer(ctx context.Context, a *models.QuizAnswer) error {
	a.ID = uuid.New()
	query := `INSERT INTO quiz_answers (id, quiz_session_id, bird_id, selected_bird_id, is_correct, time_taken_seconds)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		a.ID, a.QuizSessionID, a.BirdID, a.SelectedBirdID, a.IsCorrect, a.TimeTakenSeconds,
	).Scan(&a.CreatedAt)
	if err != nil {
		return &quiz.PersistenceError{Op: "save quiz answer", Err: err}
	}
	return nil
}

// ListAnswersBySession resolves both the correct and the selected bird for
// every answer in one query.
func (r *QuizRepo) ListAnswersBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.QuizAnswer, error) {
	query := `SELECT a.id, a.quiz_session_id, a.bird_id, a.selected_bird_id, a.is_correct, a.time_taken_seconds, a.created_at,
			b.id, b.name, b.image_url, b.audio_url, b.scientific_name, b.description, b.difficulty_level, b.created_at, b.updated_at,
			sb.id, sb.name, sb.image_url, sb.audio_url, sb.scientific_name, sb.description, sb.difficulty_level, sb.created_at, sb.updated_at
		FROM quiz_answers a
		JOIN birds b ON b.id = a.bird_id
		JOIN birds sb ON sb.id = a.selected_bird_id
		WHERE a.quiz_session_id = $1
		ORDER BY a.created_at, a.id`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, &quiz.DataUnavailableError{Op: "list quiz answers", Err: err}
	}
	defer rows.Close()

	var answers []*models.QuizAnswer
	for rows.Next() {
		a := &models.QuizAnswer{Bird: &models.Bird{}, SelectedBird: &models.Bird{}}
		err := rows.Scan(
			&a.ID, &a.QuizSessionID, &a.BirdID, &a.SelectedBirdID, &a.IsCorrect, &a.TimeTakenSeconds, &a.CreatedAt,
			&a.Bird.ID, &a.Bird.Name, &a.Bird.ImageURL, &a.Bird.AudioURL, &a.Bird.ScientificName, &a.Bird.Description, &a.Bird.DifficultyLevel, &a.Bird.CreatedAt, &a.Bird.UpdatedAt,
			&a.SelectedBird.ID, &a.SelectedBird.Name, &a.SelectedBird.ImageURL, &a.SelectedBird.AudioURL, &a.SelectedBird.ScientificName, &a.SelectedBird.Description, &a.SelectedBird.DifficultyLevel, &a.SelectedBird.CreatedAt, &a.SelectedBird.UpdatedAt,
		)
		if err != nil {
			return nil, &quiz.DataUnavailableError{Op: "scan quiz answer", Err: err}
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &quiz.DataUnavailableError{Op: "read quiz answers", Err: err}
	}
	return answers, nil
}
