package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/tickoff/tickoff-be/internal/api/handlers"
	"github.com/tickoff/tickoff-be/internal/auth"
	"github.com/tickoff/tickoff-be/internal/services"
	"github.com/tickoff/tickoff-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.TokenManager, hub *websocket.Hub, userService services.UserServiceProvider, taskService services.TaskServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	taskHandler := handlers.NewTaskHandler(taskService)
	statusHandler := handlers.NewStatusHandler()
	wsHandler := handlers.NewWebSocketHandler(hub, tokens)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/status", statusHandler.Get)

		// Task event feed; authenticates inside the handler because
		// browsers cannot set headers on websocket requests.
		r.Get("/ws", wsHandler.Serve)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Get("/accounts", userHandler.GetMe)

			r.Route("/todos", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", taskHandler.Update)
					r.Delete("/", taskHandler.Delete)
				})
			})
		})
	})

	return r
}
