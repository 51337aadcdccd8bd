package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mira/handwriting-trainer/internal/api/handlers"
	"github.com/mira/handwriting-trainer/internal/api/middleware"
	"github.com/mira/handwriting-trainer/internal/config"
	"github.com/mira/handwriting-trainer/internal/notify"
	"github.com/mira/handwriting-trainer/internal/service"
	"github.com/rs/cors"
)

func NewRouter(services *service.Services, hub *notify.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	classroomHandler := handlers.NewClassroomHandler(services.Classroom, services.Auth)
	courseHandler := handlers.NewCourseHandler(services.Course, services.Auth)
	practiceHandler := handlers.NewPracticeHandler(services.Practice, services.Auth)
	billingHandler := handlers.NewBillingHandler(services.Billing)
	messageHandler := handlers.NewMessageHandler(services.Message)
	wsHandler := handlers.NewNotificationHandler(hub, services.Auth)
	pageHandler := handlers.NewPageHandler()

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/verify", authHandler.VerifyEmail)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Put("/me", authHandler.UpdateMe)
				r.Post("/logout", authHandler.Logout)
				r.Post("/resend-verification", authHandler.ResendVerification)
			})
		})

		// Public catalog routes
		r.Get("/plans", billingHandler.ListPlans)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Classroom routes
			r.Route("/classrooms", func(r chi.Router) {
				r.Post("/", classroomHandler.Create)
				r.Get("/", classroomHandler.ListMine)
				r.Get("/{idOrCode}", classroomHandler.Get)
				r.Post("/join/{code}", classroomHandler.Join)
				r.Put("/{id}", classroomHandler.Update)
				r.Get("/{id}/members", classroomHandler.Members)
			})

			// Course routes
			r.Route("/courses", func(r chi.Router) {
				r.Post("/", courseHandler.Create)
				r.Get("/", courseHandler.List)
				r.Get("/mine", courseHandler.ListMine)
				r.Get("/{id}", courseHandler.Get)
				r.Put("/{id}", courseHandler.Update)
				r.Post("/{id}/lessons", courseHandler.AddLesson)
			})

			// Practice routes
			r.Route("/practice-sets", func(r chi.Router) {
				r.Post("/", practiceHandler.CreateSet)
				r.Get("/{id}", practiceHandler.GetSet)
				r.Put("/{id}", practiceHandler.UpdateSet)
				r.Post("/{id}/submissions", practiceHandler.Submit)
				r.Get("/{id}/submissions", practiceHandler.ListSubmissions)
			})
			r.Get("/lessons/{lessonId}/practice-sets", practiceHandler.ListSets)
			r.Post("/submissions/{submissionId}/score", practiceHandler.Score)

			// Billing routes
			r.Route("/payments", func(r chi.Router) {
				r.Post("/", billingHandler.StartPayment)
				r.Get("/", billingHandler.ListPayments)
				r.Post("/{id}/settle", billingHandler.SettlePayment)
			})
			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", billingHandler.ListSubscriptions)
				r.Get("/active", billingHandler.ActiveSubscription)
				r.Post("/cancel", billingHandler.CancelSubscription)
			})

			// Message routes
			r.Route("/messages", func(r chi.Router) {
				r.Post("/", messageHandler.Send)
				r.Get("/unread", messageHandler.UnreadCount)
				r.Get("/with/{userId}", messageHandler.Conversation)
				r.Post("/{id}/read", messageHandler.MarkRead)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	// Page routes sit behind the cookie-presence gate, not behind Auth.
	gate := middleware.NewGate(
		[]string{"/auth/login", "/auth/register", "/auth/forgot-password"},
		"/auth/login",
		"/users/me",
	)
	r.Group(func(r chi.Router) {
		r.Use(gate.Handler)
		r.Get("/auth/login", pageHandler.Login())
		r.Get("/auth/register", pageHandler.Register())
		r.Get("/auth/forgot-password", pageHandler.ForgotPassword())
		r.Get("/users/me", pageHandler.Profile())
		r.Get("/practice", pageHandler.Practice())
	})

	return r
}
