package api

import (
	"net/http"
	"time"

	"taskreg/internal/api/handler"
	"taskreg/internal/api/middleware"
	"taskreg/internal/app/service"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	authService *service.AuthService,
	sessionService *service.SessionService,
	taskService *service.TaskService,
	typeService *service.TaskTypeService,
	userService *service.UserService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	authenticate := middleware.Authenticator(sessionService)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService, sessionService)
		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", authHandler.Login)
			auth.Get("/status", authHandler.Status)

			auth.Group(func(protected chi.Router) {
				protected.Use(authenticate)
				protected.Post("/logout", authHandler.Logout)
				protected.Get("/me", authHandler.Me)
			})
		})

		taskHandler := handler.NewTaskHandler(taskService)
		api.Route("/tasks", func(tasks chi.Router) {
			tasks.Use(authenticate)
			taskHandler.RegisterRoutes(tasks)
		})

		typeHandler := handler.NewTaskTypeHandler(typeService)
		api.Route("/types", func(types chi.Router) {
			types.Use(authenticate)
			typeHandler.RegisterRoutes(types)
		})

		userHandler := handler.NewUserHandler(userService)
		api.Route("/users", func(users chi.Router) {
			users.Use(authenticate)
			userHandler.RegisterRoutes(users)
		})
	})

	return r
}
