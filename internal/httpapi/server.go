// Package httpapi exposes the journey orchestrator as a JSON API. Users
// are identified by the X-User-ID header; authentication is handled in
// front of this service.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/abhisek/openmind/internal/journey"
	"github.com/abhisek/openmind/internal/store"
)

// Config holds the router settings.
type Config struct {
	ServiceName  string
	AllowOrigins []string
}

// Server serves the API.
type Server struct {
	orch     *journey.Orchestrator
	store    *store.Store
	logger   *zap.Logger
	sessions *sessions
	now      func() time.Time
	engine   *gin.Engine
}

// New builds the router. logger may be nil.
func New(orch *journey.Orchestrator, st *store.Store, cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "openmind"
	}
	s := &Server{
		orch:     orch,
		store:    st,
		logger:   logger,
		sessions: newSessions(orch),
		now:      time.Now,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(attachRequestID())
	r.Use(requestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	r.GET("/healthz", s.health)

	v1 := r.Group("/v1")
	v1.GET("/catalog", s.listCatalog)

	user := v1.Group("/")
	user.Use(requireUser())
	{
		user.GET("/journey", s.getJourney)
		user.POST("/journey/advance", s.advance)
		user.POST("/journey/quiz", s.submitQuiz)
		user.GET("/journey/days", s.listDays)

		user.GET("/journeys", s.listJourneys)
		user.POST("/journeys", s.startJourney)
		user.POST("/journeys/:id/select", s.selectJourney)

		user.POST("/catalog/:stream/:subject/start", s.startSubject)

		user.GET("/profile", s.getProfile)
		user.PUT("/profile", s.updateProfile)
	}
	v1.GET("/leaderboard", s.leaderboard)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", headerUserID, headerRequestID},
		ExposeHeaders: []string{headerRequestID, headerTraceID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.DB().PingContext(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
