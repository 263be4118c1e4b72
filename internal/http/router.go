package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/metrics"
	"github.com/mrlokans/wordbook/internal/storage"
)

const hstsMaxAge = 365 * 24 * 60 * 60

// Router is the configured gin engine plus the resources its controllers own.
type Router struct {
	*gin.Engine
	authController *auth.AuthController
}

// Close stops background work started by the controllers.
func (r *Router) Close() {
	if r.authController != nil {
		r.authController.Stop()
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *Router {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware(cfg.Logger))

	if cfg.MetricsEnabled {
		router.Use(metrics.Middleware())
	}

	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.AuthConfig.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(hstsMaxAge))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.AuthConfig.SecureCookies, cfg.Tokens))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	router.Use(auth.NewMiddleware(cfg.AuthService, cfg.SessionManager, cfg.Tokens).Handler())

	pinger := cfg.Pinger
	if pinger == nil {
		if p, ok := cfg.Store.(storage.Pinger); ok {
			pinger = p
		}
	}
	health := NewHealthController(pinger, cfg.Redis, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api")

	authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Tokens, cfg.AuthConfig)
	authController.RegisterRoutes(api)

	categories := NewCategoriesController(cfg.Store)
	api.GET("/categories", categories.ListCategories)
	api.POST("/categories", categories.CreateCategory)
	api.GET("/categories/:id", categories.GetCategory)
	api.PATCH("/categories/:id", categories.UpdateCategory)
	api.DELETE("/categories/:id", categories.DeleteCategory)

	words := NewWordsController(cfg.Store)
	api.GET("/words", words.ListWords)
	api.POST("/words", words.CreateWord)
	api.GET("/words/:id", words.GetWord)
	api.PATCH("/words/:id", words.UpdateWord)
	api.DELETE("/words/:id", words.DeleteWord)

	practice := NewPracticeController(cfg.Store)
	api.GET("/practice", practice.GetDeck)
	api.GET("/practice/next", practice.NextCard)

	if cfg.Exporter != nil {
		export := NewExportController(cfg.Exporter, cfg.TaskQueue)
		api.GET("/export/markdown", export.DownloadMarkdown)
		api.POST("/export", export.EnqueueExport)
	}

	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return &Router{Engine: router, authController: authController}
}
