package models

import (
	"time"

	"github.com/google/uuid"
)

// Bird is a catalog entry. The catalog is read-only from this service's
// perspective; rows are managed by external catalog tooling.
type Bird struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	ImageURL        string     `json:"image_url"`
	AudioURL        string     `json:"audio_url"`
	ScientificName  *string    `json:"scientific_name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	DifficultyLevel *int       `json:"difficulty_level,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
