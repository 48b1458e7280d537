package handlers

import (
	"net/http"
	"strconv"

	"birdsong-backend/internal/quiz"
)

type BirdHandler struct {
	catalog *quiz.CatalogService
}

func NewBirdHandler(catalog *quiz.CatalogService) *BirdHandler {
	return &BirdHandler{catalog: catalog}
}

// List returns the catalog, optionally filtered by ?difficulty=N.
func (h *BirdHandler) List(w http.ResponseWriter, r *http.Request) {
	difficulty, ok, err := intQueryParam(r, "difficulty")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "difficulty must be an integer", r))
		return
	}

	var birds interface{}
	if ok {
		birds, err = h.catalog.ListByDifficulty(r.Context(), difficulty)
	} else {
		birds, err = h.catalog.ListAll(r.Context())
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"birds": birds})
}

// Random returns up to ?count=N birds sampled without replacement,
// optionally filtered by ?difficulty=N.
func (h *BirdHandler) Random(w http.ResponseWriter, r *http.Request) {
	count, ok, err := intQueryParam(r, "count")
	if err != nil || (ok && count <= 0) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "count must be a positive integer", r))
		return
	}
	if !ok {
		count = 4
	}

	var difficultyLevel *int
	if difficulty, ok, err := intQueryParam(r, "difficulty"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "difficulty must be an integer", r))
		return
	} else if ok {
		difficultyLevel = &difficulty
	}

	birds, err := h.catalog.SampleRandom(r.Context(), count, difficultyLevel)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"birds": birds})
}

func intQueryParam(r *http.Request, name string) (int, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
