package quiz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"birdsong-backend/internal/models"
)

// memoryStore is an in-memory BirdStore + SessionStore with the same
// ordering and error contract as the Postgres repositories.
type memoryStore struct {
	mu       sync.Mutex
	birds    []models.Bird
	sessions map[uuid.UUID]models.QuizSession
	answers  map[uuid.UUID][]models.QuizAnswer

	clock time.Time

	failReads  bool
	failWrites bool
}

func newMemoryStore(birds ...models.Bird) *memoryStore {
	return &memoryStore{
		birds:    birds,
		sessions: make(map[uuid.UUID]models.QuizSession),
		answers:  make(map[uuid.UUID][]models.QuizAnswer),
		clock:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick hands out strictly increasing timestamps so ordering is deterministic.
func (m *memoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryStore) ListBirds(ctx context.Context) ([]models.Bird, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, &DataUnavailableError{Op: "list birds", Err: errors.New("store down")}
	}

	out := make([]models.Bird, len(m.birds))
	copy(out, m.birds)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) ListBirdsByDifficulty(ctx context.Context, level int) ([]models.Bird, error) {
	all, err := m.ListBirds(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Bird
	for _, b := range all {
		if b.DifficultyLevel != nil && *b.DifficultyLevel == level {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryStore) InsertSession(ctx context.Context, s *models.QuizSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return &PersistenceError{Op: "create quiz session", Err: errors.New("store down")}
	}

	s.ID = uuid.New()
	s.CreatedAt = m.tick()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memoryStore) GetSession(ctx context.Context, id uuid.UUID) (*models.QuizSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, &DataUnavailableError{Op: "get quiz session", Err: errors.New("store down")}
	}

	s, ok := m.sessions[id]
	if !ok {
		return nil, &NotFoundError{Resource: "quiz session", ID: id}
	}
	return &s, nil
}

func (m *memoryStore) UpdateSessionScore(ctx context.Context, id uuid.UUID, correctAnswers int, scorePercentage float64, completedAt *time.Time) (*models.QuizSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return nil, &PersistenceError{Op: "update quiz session", Err: errors.New("store down")}
	}

	s, ok := m.sessions[id]
	if !ok {
		return nil, &NotFoundError{Resource: "quiz session", ID: id}
	}

	s.CorrectAnswers = correctAnswers
	s.ScorePercentage = scorePercentage
	if completedAt != nil {
		s.CompletedAt = completedAt
	}
	m.sessions[id] = s
	return &s, nil
}

func (m *memoryStore) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]*models.QuizSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, &DataUnavailableError{Op: "list quiz sessions", Err: errors.New("store down")}
	}

	var out []*models.QuizSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryStore) InsertAnswer(ctx context.Context, a *models.QuizAnswer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return &PersistenceError{Op: "save quiz answer", Err: errors.New("store down")}
	}

	a.ID = uuid.New()
	a.CreatedAt = m.tick()
	m.answers[a.QuizSessionID] = append(m.answers[a.QuizSessionID], *a)
	return nil
}

func (m *memoryStore) ListAnswersBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.QuizAnswer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, &DataUnavailableError{Op: "list quiz answers", Err: errors.New("store down")}
	}

	stored := m.answers[sessionID]
	out := make([]*models.QuizAnswer, 0, len(stored))
	for _, a := range stored {
		a := a
		a.Bird = m.findBird(a.BirdID)
		a.SelectedBird = m.findBird(a.SelectedBirdID)
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

func (m *memoryStore) findBird(id uuid.UUID) *models.Bird {
	for i := range m.birds {
		if m.birds[i].ID == id {
			b := m.birds[i]
			return &b
		}
	}
	return nil
}

// testBirds builds a catalog of n birds at the given difficulty tier.
func testBirds(n, difficulty int) []models.Bird {
	birds := make([]models.Bird, 0, n)
	for i := 0; i < n; i++ {
		level := difficulty
		birds = append(birds, models.Bird{
			ID:              uuid.New(),
			Name:            fmt.Sprintf("Bird %02d", i),
			ImageURL:        fmt.Sprintf("https://cdn.example.com/birds/%d.jpg", i),
			AudioURL:        fmt.Sprintf("https://cdn.example.com/calls/%d.mp3", i),
			DifficultyLevel: &level,
		})
	}
	return birds
}
