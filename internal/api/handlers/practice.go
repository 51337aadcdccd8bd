package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/api/middleware"
	"github.com/mira/handwriting-trainer/internal/service"
	"gorm.io/datatypes"
)

type PracticeHandler struct {
	practiceService *service.PracticeService
	authService     *service.AuthService
}

func NewPracticeHandler(practiceService *service.PracticeService, authService *service.AuthService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService, authService: authService}
}

type CreatePracticeSetRequest struct {
	LessonID string          `json:"lessonId"`
	Title    string          `json:"title"`
	Template json.RawMessage `json:"template"`
}

func (h *PracticeHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.RequireVerified(user); err != nil {
		respondError(w, err)
		return
	}

	var req CreatePracticeSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lessonID, err := uuid.Parse(req.LessonID)
	if err != nil {
		http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
		return
	}

	if req.Title == "" || len(req.Template) == 0 {
		http.Error(w, "Title and template are required", http.StatusBadRequest)
		return
	}

	set, err := h.practiceService.CreateSet(r.Context(), service.CreatePracticeSetInput{
		LessonID: lessonID,
		AuthorID: user.ID,
		Title:    req.Title,
		Template: datatypes.JSON(req.Template),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, set)
}

func (h *PracticeHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	setID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid practice set ID", http.StatusBadRequest)
		return
	}

	set, err := h.practiceService.GetSet(r.Context(), setID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, set)
}

func (h *PracticeHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonId"))
	if err != nil {
		http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
		return
	}

	sets, err := h.practiceService.ListSets(r.Context(), lessonID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sets)
}

type UpdatePracticeSetRequest struct {
	Title    *string         `json:"title"`
	Template json.RawMessage `json:"template"`
}

func (h *PracticeHandler) UpdateSet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.RequireVerified(user); err != nil {
		respondError(w, err)
		return
	}

	setID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid practice set ID", http.StatusBadRequest)
		return
	}

	var req UpdatePracticeSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	set, err := h.practiceService.UpdateSet(r.Context(), setID, user.ID, service.UpdatePracticeSetInput{
		Title:    req.Title,
		Template: datatypes.JSON(req.Template),
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, set)
}

type SubmitRequest struct {
	Strokes json.RawMessage `json:"strokes"`
}

func (h *PracticeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	setID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid practice set ID", http.StatusBadRequest)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := h.practiceService.Submit(r.Context(), setID, user.ID, datatypes.JSON(req.Strokes))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sub)
}

type ScoreRequest struct {
	Score int `json:"score"`
}

func (h *PracticeHandler) Score(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.RequireVerified(user); err != nil {
		respondError(w, err)
		return
	}

	submissionID, err := uuid.Parse(chi.URLParam(r, "submissionId"))
	if err != nil {
		http.Error(w, "Invalid submission ID", http.StatusBadRequest)
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := h.practiceService.Score(r.Context(), submissionID, user.ID, req.Score)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sub)
}

func (h *PracticeHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	setID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid practice set ID", http.StatusBadRequest)
		return
	}

	subs, err := h.practiceService.ListSubmissions(r.Context(), setID, user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, subs)
}
