package handlers

import (
	"log"
	"net/http"

	ws "github.com/gorilla/websocket"
	"github.com/mira/handwriting-trainer/internal/api/middleware"
	"github.com/mira/handwriting-trainer/internal/notify"
	"github.com/mira/handwriting-trainer/internal/service"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type NotificationHandler struct {
	hub         *notify.Hub
	authService *service.AuthService
}

func NewNotificationHandler(hub *notify.Hub, authService *service.AuthService) *NotificationHandler {
	return &NotificationHandler{
		hub:         hub,
		authService: authService,
	}
}

// Handle upgrades the connection to a websocket and attaches it to the
// notification hub. Browsers cannot set headers on websocket requests, so the
// token arrives either in the auth cookie or as a query parameter.
func (h *NotificationHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		if cookie, err := r.Cookie(middleware.AccessTokenCookie); err == nil {
			token = cookie.Value
		}
	}

	user, err := h.authService.Validate(r.Context(), token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [NotificationHandler.Handle] websocket upgrade: %v", err)
		return
	}

	client := notify.NewClient(h.hub, conn, user.ID)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
