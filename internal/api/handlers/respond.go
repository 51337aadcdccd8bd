package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps domain failure kinds to transport status codes. The
// four auth kinds stay distinct all the way to the boundary because the
// client remediation differs: 401 means log in again, 403 on ErrNotVerified
// means verify your email. Anything unrecognized is logged and surfaced as
// an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrStaleSession):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, domain.ErrNotVerified):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrClassroomNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrLessonNotFound),
		errors.Is(err, domain.ErrPracticeSetNotFound),
		errors.Is(err, domain.ErrPlanNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound),
		errors.Is(err, domain.ErrSubscriptionNotActive),
		errors.Is(err, domain.ErrMessageNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrNotClassroomOwner),
		errors.Is(err, domain.ErrNotAuthor),
		errors.Is(err, domain.ErrMessageForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrSubscriptionOverlap),
		errors.Is(err, domain.ErrPaymentAlreadySettled),
		errors.Is(err, service.ErrEmailExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrClassroomArchived),
		errors.Is(err, domain.ErrNotMember),
		errors.Is(err, domain.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidVerifyToken):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		log.Printf("ERROR [handlers] unexpected error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
