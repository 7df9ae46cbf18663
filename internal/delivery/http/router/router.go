// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"markeep/internal/delivery/http/middleware"
	"markeep/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	LoggerMiddleware *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	authMiddleware   *middleware.AuthMiddleware
	loggerMiddleware *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		authMiddleware:   params.AuthMiddleware,
		loggerMiddleware: params.LoggerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.loggerMiddleware.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/join", r.authHandler.Join)
		authGroup.GET("/join/duplicate", r.authHandler.CheckDuplicate)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/login/:provider", r.authHandler.OAuthLogin)
		authGroup.POST("/renew", r.authHandler.Renew)
		authGroup.GET("/token/expired", r.authHandler.TokenExpired)
	}

	// Routes that require a valid access token.
	sessionGroup := e.Group("/auth")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.POST("/logout", r.authHandler.Logout)
		sessionGroup.PATCH("/password", r.authHandler.UpdatePassword)
	}
}
