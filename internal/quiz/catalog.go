package quiz

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"birdsong-backend/internal/models"
)

// CatalogService answers read-only queries over the bird catalog and picks
// random question pools from it.
type CatalogService struct {
	birds BirdStore

	mu  sync.Mutex
	rng *rand.Rand
}

func NewCatalogService(birds BirdStore) *CatalogService {
	return &CatalogService{
		birds: birds,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ListAll returns every bird in the catalog, ordered by name.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.Bird, error) {
	return s.birds.ListBirds(ctx)
}

// ListByDifficulty returns birds of the given tier, ordered by name.
// No matches is an empty result, not an error.
func (s *CatalogService) ListByDifficulty(ctx context.Context, level int) ([]models.Bird, error) {
	return s.birds.ListBirdsByDifficulty(ctx, level)
}

// SampleRandom returns up to count distinct birds drawn uniformly without
// replacement, optionally pre-filtered by difficulty. When the filtered pool
// holds fewer than count birds the whole pool is returned; callers that need
// an exact size must check the result length.
func (s *CatalogService) SampleRandom(ctx context.Context, count int, difficultyLevel *int) ([]models.Bird, error) {
	pool, err := s.pool(ctx, difficultyLevel)
	if err != nil {
		return nil, err
	}

	out := s.shuffled(pool)
	if count < 0 {
		count = 0
	}
	if count < len(out) {
		out = out[:count]
	}
	return out, nil
}

func (s *CatalogService) pool(ctx context.Context, difficultyLevel *int) ([]models.Bird, error) {
	if difficultyLevel != nil {
		return s.birds.ListBirdsByDifficulty(ctx, *difficultyLevel)
	}
	return s.birds.ListBirds(ctx)
}

// shuffled returns a Fisher-Yates shuffled copy, leaving the input alone.
func (s *CatalogService) shuffled(birds []models.Bird) []models.Bird {
	out := make([]models.Bird, len(birds))
	copy(out, birds)

	s.mu.Lock()
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	s.mu.Unlock()

	return out
}
