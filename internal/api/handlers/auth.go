package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mira/handwriting-trainer/internal/api/middleware"
	"github.com/mira/handwriting-trainer/internal/config"
	"github.com/mira/handwriting-trainer/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsVerified  bool   `json:"isVerified"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		http.Error(w, "Email, password and display name are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.setAuthCookies(w, result.AccessToken)
	respondJSON(w, http.StatusOK, AuthResponse{User: toUserResponse(result)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.setAuthCookies(w, result.AccessToken)
	respondJSON(w, http.StatusOK, AuthResponse{User: toUserResponse(result)})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsVerified:  user.IsVerified,
	})
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Password    *string `json:"password"`
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.DisplayName != nil && *req.DisplayName == "" {
		http.Error(w, "Display name cannot be empty", http.StatusBadRequest)
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, service.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{
		ID:          updated.ID.String(),
		Email:       updated.Email,
		DisplayName: updated.DisplayName,
		IsVerified:  updated.IsVerified,
	})
}

// Logout rotates the session server-side and clears both auth cookies, so
// neither a replayed access token nor the cookie itself survives.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		respondError(w, err)
		return
	}

	h.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Verification token is required", http.StatusBadRequest)
		return
	}

	if err := h.authService.VerifyEmail(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.ResendVerification(r.Context(), user); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

func toUserResponse(result *service.AuthResult) UserResponse {
	return UserResponse{
		ID:          result.User.ID.String(),
		Email:       result.User.Email,
		DisplayName: result.User.DisplayName,
		IsVerified:  result.User.IsVerified,
	}
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, accessToken string) {
	http.SetCookie(w, h.authCookie(middleware.AccessTokenCookie, accessToken,
		time.Duration(h.cfg.JWTExpirationHours)*time.Hour))
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	expired := -time.Hour
	http.SetCookie(w, h.authCookie(middleware.AccessTokenCookie, "", expired))
	// refreshToken is set by a legacy client build; clear it too.
	http.SetCookie(w, h.authCookie("refreshToken", "", expired))
}

func (h *AuthHandler) authCookie(name, value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
	if h.cfg.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
