package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"birdsong-backend/internal/models"
	"birdsong-backend/internal/quiz"
	"birdsong-backend/internal/services"
)

// fakeBirdStore serves a fixed catalog, already name-sorted.
type fakeBirdStore struct {
	birds []models.Bird
	err   error
}

func (f *fakeBirdStore) ListBirds(ctx context.Context) ([]models.Bird, error) {
	return f.birds, f.err
}

func (f *fakeBirdStore) ListBirdsByDifficulty(ctx context.Context, level int) ([]models.Bird, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Bird
	for _, b := range f.birds {
		if b.DifficultyLevel != nil && *b.DifficultyLevel == level {
			out = append(out, b)
		}
	}
	return out, nil
}

func catalogBirds() []models.Bird {
	easy, hard := 1, 2
	return []models.Bird{
		{ID: uuid.New(), Name: "Barn Owl", DifficultyLevel: &hard},
		{ID: uuid.New(), Name: "Blue Jay", DifficultyLevel: &easy},
		{ID: uuid.New(), Name: "Cardinal", DifficultyLevel: &easy},
	}
}

// ─── Bird Handler Tests ───

func TestBirdList(t *testing.T) {
	h := NewBirdHandler(quiz.NewCatalogService(&fakeBirdStore{birds: catalogBirds()}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/birds/", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Birds []models.Bird `json:"birds"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Birds) != 3 {
		t.Errorf("Expected 3 birds, got %d", len(resp.Birds))
	}
}

func TestBirdList_DifficultyFilter(t *testing.T) {
	h := NewBirdHandler(quiz.NewCatalogService(&fakeBirdStore{birds: catalogBirds()}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/birds/?difficulty=1", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Birds []models.Bird `json:"birds"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp.Birds) != 2 {
		t.Errorf("Expected 2 birds at difficulty 1, got %d", len(resp.Birds))
	}
}

func TestBirdList_BadDifficulty(t *testing.T) {
	h := NewBirdHandler(quiz.NewCatalogService(&fakeBirdStore{birds: catalogBirds()}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/birds/?difficulty=easy", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
}

func TestBirdRandom_CountAndDistinct(t *testing.T) {
	h := NewBirdHandler(quiz.NewCatalogService(&fakeBirdStore{birds: catalogBirds()}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/birds/random?count=2", nil)
	rr := httptest.NewRecorder()
	h.Random(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp struct {
		Birds []models.Bird `json:"birds"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp.Birds) != 2 {
		t.Fatalf("Expected 2 birds, got %d", len(resp.Birds))
	}
	if resp.Birds[0].ID == resp.Birds[1].ID {
		t.Error("Random sample returned the same bird twice")
	}
}

func TestBirdList_StoreDown(t *testing.T) {
	store := &fakeBirdStore{err: &quiz.DataUnavailableError{Op: "list birds", Err: errors.New("dial refused")}}
	h := NewBirdHandler(quiz.NewCatalogService(store))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/birds/", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rr.Code)
	}
}

// ─── Error Mapping Tests ───

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"email": "bad"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "taken"}, http.StatusConflict, "CONFLICT"},
		{"unauthorized", &services.UnauthorizedError{Message: "nope"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"session not found", &quiz.NotFoundError{Resource: "quiz session", ID: uuid.New()}, http.StatusNotFound, "NOT_FOUND"},
		{"completed session", &quiz.InvalidStateError{Message: "quiz session is already completed"}, http.StatusConflict, "INVALID_STATE"},
		{"thin pool", &quiz.InsufficientPoolError{Need: 5, Have: 2}, http.StatusConflict, "INSUFFICIENT_POOL"},
		{"store unreachable", &quiz.DataUnavailableError{Op: "list birds", Err: errors.New("down")}, http.StatusServiceUnavailable, "DATA_UNAVAILABLE"},
		{"write failed", &quiz.PersistenceError{Op: "save quiz answer", Err: errors.New("constraint")}, http.StatusInternalServerError, "PERSISTENCE_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestErrorRespCarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")

	resp := errorResp("NOT_FOUND", "gone", req)
	if resp.Error.RequestID != "req-123" {
		t.Errorf("Expected request_id 'req-123', got %q", resp.Error.RequestID)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusCreated, map[string]string{"message": "ok"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "ok" {
		t.Errorf("Expected message 'ok', got %q", result["message"])
	}
}
