package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"birdsong-backend/internal/middleware"
	"birdsong-backend/internal/models"
	"birdsong-backend/internal/quiz"
)

type QuizHandler struct {
	quizService    *quiz.Service
	sessionService *quiz.SessionService
}

func NewQuizHandler(quizService *quiz.Service, sessionService *quiz.SessionService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		sessionService: sessionService,
	}
}

func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var settings models.QuizSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if !quiz.AllowedQuestionCount(settings.TotalQuestions) {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"total_questions": "Must be 5, 10 or 15"}, r))
		return
	}
	if settings.DifficultyLevel != nil && (*settings.DifficultyLevel < 1 || *settings.DifficultyLevel > 3) {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"difficulty_level": "Must be between 1 and 3"}, r))
		return
	}

	userID := middleware.GetUserID(r.Context())

	result, err := h.quizService.StartQuiz(r.Context(), userID, settings)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sessions, err := h.sessionService.ListSessions(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *QuizHandler) GetAnswers(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	answers, err := h.sessionService.GetAnswers(r.Context(), sess.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
}

func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.BirdID == uuid.Nil || req.SelectedBirdID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"bird_id": "Both bird_id and selected_bird_id are required"}, r))
		return
	}

	result, err := h.quizService.SubmitAnswer(r.Context(), sess.ID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func (h *QuizHandler) Finish(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	updated, err := h.quizService.FinishQuiz(r.Context(), sess.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// ownedSession loads the {id} session and rejects requests from anyone but
// its owner. Writes the error response itself when it returns !ok.
func (h *QuizHandler) ownedSession(w http.ResponseWriter, r *http.Request) (*models.QuizSession, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return nil, false
	}

	sess, err := h.sessionService.GetSession(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return nil, false
	}

	if sess.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return nil, false
	}

	return sess, true
}
