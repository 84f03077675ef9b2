package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/heartlink/gateway/internal/api/handler"
	"github.com/heartlink/gateway/internal/api/middleware"
	"github.com/heartlink/gateway/internal/api/relay"
	"github.com/heartlink/gateway/internal/core/service"
	"github.com/heartlink/gateway/internal/infrastructure/backend"
	"github.com/heartlink/gateway/internal/infrastructure/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("gateway"))

	// --- Dependencies ---
	client := backend.New(cfg, log)
	tokens := service.NewTokenService(cfg.JWTSecret)
	matches := service.NewMatchService(client, log)
	profiles := service.NewProfileService(client, log)
	accounts := service.NewAccountService(client, log)

	authHandler := handler.NewAuthHandler(client)
	userHandler := handler.NewUserHandler(client, profiles, accounts)
	matchingHandler := handler.NewMatchingHandler(client, matches)
	chatHandler := handler.NewChatHandler(client)
	homeHandler := handler.NewHomeHandler()
	streamRelay := relay.New(tokens, client, cfg.AllowedOrigin, log)

	auth := middleware.Auth(tokens)
	completeOnly := middleware.RequireCompleteProfile()
	incompleteOnly := middleware.RequireIncompleteProfile()

	// --- Auth (no token required) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User ---
	e.GET("/user/complete_profile", userHandler.ProfileOptions)
	e.POST("/user/complete_profile", userHandler.CompleteProfile, auth, incompleteOnly)
	e.GET("/user/profile", userHandler.Profile, auth)
	e.DELETE("/user/account", userHandler.DeleteAccount, auth)
	e.POST("/user/images", userHandler.UploadImage, auth)
	e.DELETE("/user/images/:image_id", userHandler.DeleteImage, auth)

	// --- Home ---
	e.GET("/home", homeHandler.Home, auth, completeOnly)

	// --- Matching ---
	e.GET("/matching/potential", matchingHandler.Potential, auth, completeOnly)
	e.POST("/matching/swipe", matchingHandler.Swipe, auth, completeOnly)
	e.GET("/matching/connections", matchingHandler.Connections, auth)
	e.POST("/matching/dismatch", matchingHandler.Dismatch, auth)
	e.GET("/matching/relationships/check", matchingHandler.CheckRelationship)
	e.GET("/matching/relationships/user/:user_id/active", matchingHandler.ActiveRelationship)

	// --- Chat ---
	e.GET("/chat/chats", chatHandler.Chats, auth)
	e.GET("/chat/chats/:chat_id/messages", chatHandler.Messages, auth)
	e.POST("/chat/chats/:chat_id/read", chatHandler.MarkRead, auth)
	e.GET("/chat/chats/by-relationship/:relationship_id", chatHandler.ByRelationship, auth)

	// --- Chat stream relay (token in path, not header) ---
	e.GET("/chat/ws/:token", streamRelay.Handle)

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(client)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
