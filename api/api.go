// Package api is the thin HTTP export layer over the report catalog. It
// serves the same rows the catalog returns, as JSON.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jorro/reelstats/cache"
	"github.com/jorro/reelstats/config"
	"github.com/jorro/reelstats/report"
)

// Server exposes the report catalog over HTTP.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	catalog   *report.Catalog
	results   *cache.PrefixedCache[*report.Result]
}

// New creates the export server around an already-loaded catalog.
func New(cfg *config.Config, catalog *report.Catalog, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("report catalog is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	return &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		catalog:   catalog,
		results:   cache.New[*report.Result]("report:", ttl),
	}, nil
}

func (s *Server) setupRoutes() {
	s.ginEngine.Use(gin.Recovery())
	s.ginEngine.Use(requestID())
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	s.ginEngine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.ginEngine.Group("/api")
	api.GET("/reports", s.listReports)
	api.GET("/reports/:report", s.runReport)
}

// Run starts the server and blocks until it fails.
func (s *Server) Run() error {
	s.setupRoutes()

	return s.ginEngine.Run(s.cfg.Listen)
}

func (s *Server) listReports(c *gin.Context) {
	type entry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Args        string `json:"args,omitempty"`
	}
	defs := s.catalog.Definitions()
	entries := make([]entry, 0, len(defs))
	for _, def := range defs {
		entries = append(entries, entry{Name: def.Name, Description: def.Description, Args: def.Args})
	}
	c.JSON(http.StatusOK, gin.H{"reports": entries})
}

func (s *Server) runReport(c *gin.Context) {
	name := c.Param("report")
	params, err := queryParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := fmt.Sprintf("%s/%+v", name, params)
	if cached, err := s.results.Get(c.Request.Context(), key); err == nil && cached != nil {
		log.Debug("serving cached report", "report", name)
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := s.catalog.Run(name, params)
	switch {
	case errors.Is(err, report.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, report.ErrMissingParam):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.results.Set(c.Request.Context(), key, result); err != nil {
		log.Warnf("failed to cache report %s: %v", name, err)
	}
	c.JSON(http.StatusOK, result)
}

func queryParams(c *gin.Context) (report.Params, error) {
	var p report.Params
	for query, target := range map[string]*int{
		"year":  &p.Year,
		"n":     &p.N,
		"years": &p.Years,
	} {
		raw := c.Query(query)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return report.Params{}, fmt.Errorf("invalid %s parameter: %q", query, raw)
		}
		*target = value
	}
	p.Name = c.Query("name")
	p.Country = c.Query("country")
	return p, nil
}

// requestID tags every request with a unique id for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
