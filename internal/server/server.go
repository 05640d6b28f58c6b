// Package server exposes the receiver over HTTP: health and readiness
// probes, prometheus metrics, and a draining /latest endpoint that
// mirrors the consume-on-read contract of the underlying store.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"camrx/internal/observability"
	"camrx/internal/wire"
)

// LatestSource is the slice of the receiver the HTTP surface needs.
type LatestSource interface {
	TakeLatest() (wire.Record, bool)
	Err() error
}

type Server struct {
	id       string
	source   LatestSource
	router   *gin.Engine
	appeared time.Time
}

func New(id string, source LatestSource, corsOrigins []string) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		id:       id,
		source:   source,
		router:   r,
		appeared: time.Now(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := s.source.Err(); err != nil {
			status = "decode loop dead: " + err.Error()
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"uptime":  time.Since(s.appeared).String(),
			"service": s.id,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   s.source.Err() == nil,
			"uptime":  time.Since(s.appeared).String(),
			"service": s.id,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Draining read: the record is consumed, exactly like TakeLatest.
	// No new frame since the last call yields 204.
	s.router.GET("/latest", func(c *gin.Context) {
		rec, ok := s.source.TakeLatest()
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, rec)
	})
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost"}
	}
	return origins
}
