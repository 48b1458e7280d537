package quiz

import (
	"context"

	"github.com/google/uuid"

	"birdsong-backend/internal/models"
)

// optionsPerQuestion is the number of choices shown for each question:
// the correct bird plus three distractors.
const optionsPerQuestion = 4

var allowedQuestionCounts = map[int]bool{5: true, 10: true, 15: true}

// AllowedQuestionCount reports whether n is one of the question counts the
// app offers.
func AllowedQuestionCount(n int) bool { return allowedQuestionCounts[n] }

// Service runs a quiz end to end: it draws a question pool from the catalog,
// opens a session, and folds each submitted answer back into the session's
// running score.
type Service struct {
	catalog  *CatalogService
	sessions *SessionService
}

func NewService(catalog *CatalogService, sessions *SessionService) *Service {
	return &Service{catalog: catalog, sessions: sessions}
}

type StartResult struct {
	Session   *models.QuizSession   `json:"session"`
	Questions []models.QuizQuestion `json:"questions"`
}

type SubmitResult struct {
	Answer  *models.QuizAnswer  `json:"answer"`
	Session *models.QuizSession `json:"session"`
}

// StartQuiz samples target birds for every question, builds the option sets
// and creates the session. The filtered pool must cover both the question
// count and the option count per question; targets are distinct across the
// quiz, distractors are drawn fresh per question.
func (s *Service) StartQuiz(ctx context.Context, userID uuid.UUID, settings models.QuizSettings) (*StartResult, error) {
	pool, err := s.catalog.pool(ctx, settings.DifficultyLevel)
	if err != nil {
		return nil, err
	}

	need := settings.TotalQuestions
	if need < optionsPerQuestion {
		need = optionsPerQuestion
	}
	if len(pool) < need {
		return nil, &InsufficientPoolError{Need: need, Have: len(pool)}
	}

	targets := s.catalog.shuffled(pool)[:settings.TotalQuestions]

	questions := make([]models.QuizQuestion, 0, len(targets))
	for _, target := range targets {
		questions = append(questions, models.QuizQuestion{
			Bird:    target,
			Options: s.buildOptions(target, pool),
		})
	}

	sess, err := s.sessions.CreateSession(ctx, userID, settings.TotalQuestions)
	if err != nil {
		return nil, err
	}

	return &StartResult{Session: sess, Questions: questions}, nil
}

// buildOptions picks distractors for one question and shuffles the correct
// bird in among them.
func (s *Service) buildOptions(target models.Bird, pool []models.Bird) []models.Bird {
	rest := make([]models.Bird, 0, len(pool)-1)
	for _, b := range pool {
		if b.ID != target.ID {
			rest = append(rest, b)
		}
	}

	options := append(s.catalog.shuffled(rest)[:optionsPerQuestion-1], target)
	return s.catalog.shuffled(options)
}

// SubmitAnswer records one answer, then recomputes the session's running
// total from the answers actually on record and writes it back. The session
// is finalized on the last answer. Deriving the total from stored answers,
// rather than trusting a client-supplied counter, closes the gap between the
// two separate writes.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, req models.SubmitAnswerRequest) (*SubmitResult, error) {
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ans, err := s.sessions.RecordAnswer(ctx, sessionID, req.BirdID, req.SelectedBirdID, req.TimeTakenSeconds)
	if err != nil {
		return nil, err
	}

	answers, err := s.sessions.GetAnswers(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}

	updated, err := s.sessions.UpdateSession(ctx, sessionID, correct, len(answers) >= sess.TotalQuestions)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{Answer: ans, Session: updated}, nil
}

// FinishQuiz finalizes a session early with whatever score it has accrued.
func (s *Service) FinishQuiz(ctx context.Context, sessionID uuid.UUID) (*models.QuizSession, error) {
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessions.UpdateSession(ctx, sessionID, sess.CorrectAnswers, true)
}
