package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/studyprofile-server/internal/api/http/handler"
	"github.com/dtroode/studyprofile-server/internal/api/http/middleware"
	"github.com/dtroode/studyprofile-server/internal/logger"
	"github.com/dtroode/studyprofile-server/internal/model"
)

// Router represents the HTTP router for profile operations.
// It wires handlers and middleware into a gin engine.
type Router struct {
	profileService handler.ProfileService
	store          handler.Pinger
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	corsOrigins    []string
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
//
// Parameters:
//   - profileService: The profile operations service
//   - store: The store checked by the health endpoint
//   - tokenService: Resolves bearer tokens to user IDs
//   - contextManager: Carries the user ID through request contexts
//   - corsOrigins: Browser origins allowed to call the API
//   - logger: The logger for request logging
//
// Returns a pointer to the newly created Router instance.
func New(
	profileService handler.ProfileService,
	store handler.Pinger,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	corsOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		profileService: profileService,
		store:          store,
		tokenService:   tokenService,
		contextManager: contextManager,
		corsOrigins:    corsOrigins,
		logger:         logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handle(), middleware.CORS(r.corsOrigins))

	r.registerHealthRoutes(engine)
	r.registerProfileRoutes(engine.Group("/api/v1/profile", authenticate.RequireAuth()))

	return engine
}

func (r *Router) registerHealthRoutes(engine *gin.Engine) {
	healthHandler := handler.NewHealth(r.store, r.logger)
	engine.GET("/healthz", healthHandler.Check)
}

func (r *Router) registerProfileRoutes(group *gin.RouterGroup) {
	profileHandler := handler.NewProfile(r.profileService, r.contextManager, r.logger)
	group.POST("/changes", profileHandler.Change)
	group.POST("/reads", profileHandler.Read)
	group.POST("/deletions", profileHandler.Delete)
}
