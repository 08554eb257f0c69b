package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	authRegistry "github.com/afyasync/afyasync/backend/internal/auth"
	authHandler "github.com/afyasync/afyasync/backend/internal/handler/auth"
	chatHandler "github.com/afyasync/afyasync/backend/internal/handler/chat"
	"github.com/afyasync/afyasync/backend/internal/handler/stream"
	wellnessHandler "github.com/afyasync/afyasync/backend/internal/handler/wellness"
	"github.com/afyasync/afyasync/backend/internal/handler/ws"
	middlewarePkg "github.com/afyasync/afyasync/backend/internal/middleware"
	aiService "github.com/afyasync/afyasync/backend/internal/service/ai"
	"github.com/afyasync/afyasync/backend/internal/service/conversation"
	"github.com/afyasync/afyasync/backend/internal/service/session"
	wellnessService "github.com/afyasync/afyasync/backend/internal/service/wellness"
	"github.com/afyasync/afyasync/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(registry *authRegistry.Registry, sessions *session.Store, orchestrator *conversation.Orchestrator, wellnessSvc *wellnessService.Service, aiSvc *aiService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	authH := authHandler.New(registry, sessions, wellnessSvc)
	chatH := chatHandler.New(orchestrator, sessions)
	streamH := stream.New(orchestrator)
	wsH := ws.New(orchestrator)
	wellnessH := wellnessHandler.New(wellnessSvc, aiSvc)

	r.Route("/api", func(api chi.Router) {
		authH.RegisterPublicRoutes(api)

		api.Group(func(guarded chi.Router) {
			guarded.Use(middlewarePkg.RequireIdentity(registry))

			authH.RegisterRoutes(guarded)
			chatH.RegisterRoutes(guarded)
			wellnessH.RegisterRoutes(guarded)

			guarded.Get("/chat/stream", func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("message") == "" {
					utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
					return
				}
				streamH.HandleStream(w, r)
			})
			guarded.Get("/chat/ws", wsH.HandleWebSocket)
		})
	})

	return r
}
