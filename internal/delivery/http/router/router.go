// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"unione/internal/delivery/http/middleware"
	"unione/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler      *handler.SessionHandler
	AnnouncementHandler *handler.AnnouncementHandler
	ArchiveHandler      *handler.ArchiveHandler
	NotesHandler        *handler.NotesHandler
	AssistantHandler    *handler.AssistantHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler      *handler.SessionHandler
	announcementHandler *handler.AnnouncementHandler
	archiveHandler      *handler.ArchiveHandler
	notesHandler        *handler.NotesHandler
	assistantHandler    *handler.AssistantHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:      params.SessionHandler,
		announcementHandler: params.AnnouncementHandler,
		archiveHandler:      params.ArchiveHandler,
		notesHandler:        params.NotesHandler,
		assistantHandler:    params.AssistantHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.sessionHandler.Signup)
		authGroup.POST("/login", r.sessionHandler.Login)
		authGroup.POST("/logout", r.sessionHandler.Logout)
	}

	// Session state is readable in every phase, including anonymous
	e.GET("/session", r.sessionHandler.GetSession)

	// Profile routes that require an active session
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.RequireSession)
	{
		profileGroup.GET("", r.sessionHandler.GetProfile)
		profileGroup.PUT("", r.sessionHandler.UpdateProfile)
		profileGroup.GET("/id-card", r.sessionHandler.GetIDCard)
	}

	// Announcements: reading is public, writing needs a session
	announcementGroup := e.Group("/announcements")
	{
		announcementGroup.GET("", r.announcementHandler.List)
		announcementGroup.POST("", r.announcementHandler.Create, r.authMiddleware.RequireSession)
		announcementGroup.DELETE("/:id", r.announcementHandler.Delete, r.authMiddleware.RequireSession)
	}

	// Archive: reading is public, uploading needs a session
	archiveGroup := e.Group("/archive")
	{
		archiveGroup.GET("", r.archiveHandler.List)
		archiveGroup.POST("", r.archiveHandler.Upload, r.authMiddleware.RequireSession)
	}

	// Study notes and the scripted assistant are public
	e.GET("/notes", r.notesHandler.List)
	assistantGroup := e.Group("/assistant")
	{
		assistantGroup.POST("/ask", r.assistantHandler.Ask)
		assistantGroup.GET("/greeting", r.assistantHandler.Greeting)
	}
}
