package api

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Router manages the HTTP server and its dependencies,
// including controllers and session token authentication.
type Router struct {
	addr                    string
	baseURL                 string
	controllers             []i.Controller
	authorizationMiddleware gin.HandlerFunc
	logger                  *logrus.Entry
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr                    string // Address to listen on
	BaseURL                 string // Base URL for API routes
	Controllers             []i.Controller
	AuthorizationMiddleware gin.HandlerFunc
	Logger                  *logrus.Entry // Request log; defaults to the standard logger
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	logger := config.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Router{
		addr:                    config.Addr,
		baseURL:                 config.BaseURL,
		controllers:             config.Controllers,
		authorizationMiddleware: config.AuthorizationMiddleware,
		logger:                  logger,
	}
}

// Handler builds the gin engine with every controller registered.
//
// Routes are grouped and managed under the base URL, with the following access levels:
// - Public routes: No authentication required.
// - Protected routes: A session token is required.
func (r *Router) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(r.logger))

	// Setting up routes under baseURL
	api := router.Group(r.baseURL)

	{
		// Public routes (accessible without authentication)
		publicRoutes := api.Group("/v1")
		{
			for _, c := range r.controllers {
				c.RegisterPublic(publicRoutes)
			}
		}

		// Protected routes (authentication required)
		protectedRoutes := api.Group("/v1")
		protectedRoutes.Use(r.authorizationMiddleware)
		{
			for _, c := range r.controllers {
				c.RegisterProtected(protectedRoutes)
			}
		}
	}

	return router
}

// Run starts the HTTP server.
func (r *Router) Run() error {
	r.logger.WithField("addr", r.addr).Info("HTTP server listening")
	return r.Handler().Run(r.addr)
}

// LoggerMiddleware logs one line per request, at a level chosen by the status code.
func LoggerMiddleware(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		// The query is left out: it may carry a session token.
		path := c.Request.URL.Path
		statusCode := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  time.Since(startTime).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			entry.Error(errorMessage)
			return
		}
		switch {
		case statusCode >= 500:
			entry.Error("server error")
		case statusCode >= 400:
			entry.Warn("client error")
		default:
			entry.Info("request handled")
		}
	}
}
