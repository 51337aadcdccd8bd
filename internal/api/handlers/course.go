package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/api/middleware"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/service"
)

type CourseHandler struct {
	courseService *service.CourseService
	authService   *service.AuthService
}

func NewCourseHandler(courseService *service.CourseService, authService *service.AuthService) *CourseHandler {
	return &CourseHandler{courseService: courseService, authService: authService}
}

type CreateCourseRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Script      domain.Script `json:"script"`
	IsPremium   bool          `json:"isPremium"`
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.RequireVerified(user); err != nil {
		respondError(w, err)
		return
	}

	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		http.Error(w, "Course title is required", http.StatusBadRequest)
		return
	}

	course, err := h.courseService.Create(r.Context(), service.CreateCourseInput{
		AuthorID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Script:      req.Script,
		IsPremium:   req.IsPremium,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	course, err := h.courseService.Get(r.Context(), courseID, user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 20)
	courses, err := h.courseService.ListPublished(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	courses, err := h.courseService.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, courses)
}

type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Publish     bool    `json:"publish"`
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.RequireVerified(user); err != nil {
		respondError(w, err)
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var req UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	course, err := h.courseService.Update(r.Context(), courseID, user.ID, service.UpdateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Publish:     req.Publish,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, course)
}

type AddLessonRequest struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func (h *CourseHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.RequireVerified(user); err != nil {
		respondError(w, err)
		return
	}

	courseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var req AddLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		http.Error(w, "Lesson title is required", http.StatusBadRequest)
		return
	}

	lesson, err := h.courseService.AddLesson(r.Context(), courseID, user.ID, service.AddLessonInput{
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lesson)
}
