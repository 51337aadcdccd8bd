package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/api/middleware"
	"github.com/mira/handwriting-trainer/internal/service"
)

type ClassroomHandler struct {
	classroomService *service.ClassroomService
	authService      *service.AuthService
}

func NewClassroomHandler(classroomService *service.ClassroomService, authService *service.AuthService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService, authService: authService}
}

type CreateClassroomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ClassroomHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.RequireVerified(user); err != nil {
		respondError(w, err)
		return
	}

	var req CreateClassroomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "Classroom name is required", http.StatusBadRequest)
		return
	}

	classroom, err := h.classroomService.Create(r.Context(), service.CreateClassroomInput{
		OwnerID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, classroom)
}

func (h *ClassroomHandler) Get(w http.ResponseWriter, r *http.Request) {
	classroom, err := h.classroomService.Get(r.Context(), chi.URLParam(r, "idOrCode"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, classroom)
}

func (h *ClassroomHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	classroom, err := h.classroomService.Join(r.Context(), chi.URLParam(r, "code"), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, classroom)
}

type UpdateClassroomRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Archive     bool    `json:"archive"`
}

func (h *ClassroomHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.RequireVerified(user); err != nil {
		respondError(w, err)
		return
	}

	classroomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid classroom ID", http.StatusBadRequest)
		return
	}

	var req UpdateClassroomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	classroom, err := h.classroomService.Update(r.Context(), classroomID, user.ID, service.UpdateClassroomInput{
		Name:        req.Name,
		Description: req.Description,
		Archive:     req.Archive,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, classroom)
}

func (h *ClassroomHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, offset := pagination(r, 20)
	classrooms, err := h.classroomService.ListMine(r.Context(), user.ID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, classrooms)
}

func (h *ClassroomHandler) Members(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	classroomID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid classroom ID", http.StatusBadRequest)
		return
	}

	members, err := h.classroomService.Members(r.Context(), classroomID, user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, members)
}

func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
