package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"birdsong-backend/internal/models"
	"birdsong-backend/internal/quiz"
)

// BirdRepo reads the shared bird catalog. The table is populated by external
// catalog tooling; this service never writes to it.
type BirdRepo struct {
	pool *pgxpool.Pool
}

func NewBirdRepo(pool *pgxpool.Pool) *BirdRepo {
	return &BirdRepo{pool: pool}
}

const birdColumns = `id, name, image_url, audio_url, scientific_name, description, difficulty_level, created_at, updated_at`

func (r *BirdRepo) ListBirds(ctx context.Context) ([]models.Bird, error) {
	query := `SELECT ` + birdColumns + ` FROM birds ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, &quiz.DataUnavailableError{Op: "list birds", Err: err}
	}
	defer rows.Close()

	return scanBirds(rows)
}

func (r *BirdRepo) ListBirdsByDifficulty(ctx context.Context, level int) ([]models.Bird, error) {
	query := `SELECT ` + birdColumns + ` FROM birds WHERE difficulty_level = $1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, level)
	if err != nil {
		return nil, &quiz.DataUnavailableError{Op: "list birds by difficulty", Err: err}
	}
	defer rows.Close()

	return scanBirds(rows)
}

func scanBirds(rows pgx.Rows) ([]models.Bird, error) {
	var birds []models.Bird
	for rows.Next() {
		var b models.Bird
		err := rows.Scan(&b.ID, &b.Name, &b.ImageURL, &b.AudioURL, &b.ScientificName, &b.Description, &b.DifficultyLevel, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, &quiz.DataUnavailableError{Op: "scan bird", Err: err}
		}
		birds = append(birds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, &quiz.DataUnavailableError{Op: "read birds", Err: err}
	}
	return birds, nil
}
