package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"skycast.app/config"
	skyerr "skycast.app/errors"
	"skycast.app/models"
	"skycast.app/service"
)

// Server represents the HTTP server exposing the weather store
type Server struct {
	router *gin.Engine
	config *config.Config
	store  service.WeatherStoreInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(config *config.Config, store service.WeatherStoreInterface) *Server {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(weatherQueryValidation, weatherQuery{})
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), accessLogMiddleware())

	server := &Server{
		router: router,
		config: config,
		store:  store,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/suggest", s.suggest)
		api.GET("/state", s.getState)
		api.POST("/units/toggle", s.toggleUnits)
		api.GET("/favorites", s.listFavorites)
		api.POST("/favorites", s.addFavorite)
		api.DELETE("/favorites/:name", s.removeFavorite)
		api.POST("/cache/clear", s.clearCache)
		api.POST("/cache/sweep", s.sweepCache)
	}

	s.router.GET("/healthz", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func accessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		slog.Info("request",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

type weatherQuery struct {
	Q   string   `form:"q"`
	Lat *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Lon *float64 `form:"lon" binding:"omitempty,min=-180,max=180"`
}

// weatherQueryValidation requires either a free-text query or a complete
// coordinate pair.
func weatherQueryValidation(sl validator.StructLevel) {
	query := sl.Current().Interface().(weatherQuery)
	if query.Q == "" && (query.Lat == nil || query.Lon == nil) {
		sl.ReportError(query.Q, "q", "Q", "location_required", "")
	}
}

func (s *Server) getWeather(c *gin.Context) {
	var query weatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, skyerr.NewValidationError("invalid query parameters"))
		return
	}

	var (
		snapshot *models.WeatherSnapshot
		err      error
	)
	switch {
	case query.Q != "":
		snapshot, err = s.store.QueryByName(c.Request.Context(), query.Q)
	case query.Lat != nil && query.Lon != nil:
		snapshot, err = s.store.QueryByCoordinates(c.Request.Context(), *query.Lat, *query.Lon)
	default:
		s.handleError(c, skyerr.NewValidationError("either q or lat and lon are required"))
		return
	}

	if err != nil {
		s.handleError(c, err)
		return
	}
	if snapshot == nil {
		// Coalesced by the throttle with nothing displayed yet.
		c.JSON(http.StatusAccepted, gin.H{"message": "request coalesced, retry shortly"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) suggest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		s.handleError(c, skyerr.NewValidationError("q parameter is required"))
		return
	}

	suggestions, err := s.store.Suggest(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.JSON(http.StatusConflict, gin.H{"message": "superseded by a newer query"})
			return
		}
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) getState(c *gin.Context) {
	var lastError string
	if err := s.store.LastError(); err != nil {
		lastError = err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot":  s.store.Current(),
		"loading":   s.store.IsLoading(),
		"error":     lastError,
		"units":     s.store.Units(),
		"favorites": s.store.Favorites(),
	})
}

func (s *Server) toggleUnits(c *gin.Context) {
	if err := s.store.ToggleUnits(c.Request.Context()); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": s.store.Units()})
}

func (s *Server) listFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"favorites": s.store.Favorites()})
}

func (s *Server) addFavorite(c *gin.Context) {
	if err := s.store.AddFavorite(); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": s.store.Favorites()})
}

func (s *Server) removeFavorite(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		s.handleError(c, skyerr.NewValidationError("name parameter is required"))
		return
	}

	if err := s.store.RemoveFavorite(name); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": s.store.Favorites()})
}

func (s *Server) clearCache(c *gin.Context) {
	s.store.ClearCache()
	c.JSON(http.StatusOK, gin.H{"message": "cache cleared"})
}

func (s *Server) sweepCache(c *gin.Context) {
	removed := s.store.ClearExpired()
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleError maps application errors onto HTTP status codes
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *skyerr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case skyerr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case skyerr.LocationNotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case skyerr.RateLimitedError:
			statusCode = http.StatusTooManyRequests
			message = appErr.Message
		case skyerr.NetworkUnreachableError:
			statusCode = http.StatusBadGateway
			message = appErr.Message
		case skyerr.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "internal error"
		default:
			statusCode = http.StatusBadGateway
			message = appErr.Message
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "internal error"
	}

	slog.Error("request failed",
		"request_id", c.GetString("request_id"),
		"status", statusCode,
		"error", err,
	)
	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
