package coordinator

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mutware/mutctl/internal/mutators"
	"github.com/mutware/mutctl/internal/node"
	"github.com/mutware/mutctl/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server exposes the coordinator ops surface over HTTP.
type Server struct {
	Name    string    `json:"name"`
	Addr    string    `json:"addr"`
	Started time.Time `json:"started"`

	registry *mutators.Registry
	runLog   *RunLog
	router   *gin.Engine
	basePath string
}

var _ node.Node = (*Server)(nil)

func NewServer(name, addr string, corsOrigins []string, registry *mutators.Registry, runLog *RunLog) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestTelemetry(name, log.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	if registry == nil {
		registry = mutators.NewRegistry()
	}
	if runLog == nil {
		runLog = NewRunLog()
	}
	return &Server{
		Name:     name,
		Addr:     addr,
		Started:  time.Now(),
		registry: registry,
		runLog:   runLog,
		router:   r,
	}
}

func (s *Server) NodeID() string {
	return s.Name
}

func (s *Server) Kind() string {
	return "coordinator"
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	routes := s.routes()
	routes.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Started).String(),
			"node":    s.Name,
			"version": "0.0.1",
		})
	})

	routes.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":  true,
			"uptime": time.Since(s.Started).String(),
			"node":   s.Name,
		})
	})

	routes.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.GET("/mutators", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"names": s.registry.Names(),
		})
	})

	routes.GET("/mutators/:name", func(c *gin.Context) {
		name := c.Param("name")
		resolved, err := s.registry.Resolve([]string{name})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, mutators.ErrUnknownMutator) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"name":     name,
			"mutators": resolved,
		})
	})

	routes.GET("/runs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"runs": s.runLog.List(),
		})
	})

	routes.GET("/runs/:id", func(c *gin.Context) {
		outcome, ok := s.runLog.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusOK, outcome)
	})
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	return s.router.Run(s.Addr)
}

func (s *Server) routes() gin.IRoutes {
	if s.basePath == "" {
		return s.router
	}
	return s.router.Group(s.basePath)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
