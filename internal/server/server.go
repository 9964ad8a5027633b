// Package server exposes the reconciliation service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/app"
	"virsat-catia/internal/types"
)

type Config struct {
	ModelPath string
	RootUUID  string
	Workspace string
	Propagate bool
}

// Server serializes imports so that concurrent requests never interleave
// their load, edit and save of the model file. Export and map hold the read
// lock so they never load a model that is being saved.
type Server struct {
	service app.Service
	config  Config
	mu      sync.RWMutex
}

func New(service app.Service, config Config) *Server {
	return &Server{service: service, config: config}
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type MapResponse struct {
	Mapping  map[string]string `json:"mapping"`
	Unmapped []string          `json:"unmapped"`
}

type FailureResponse struct {
	UUID    string   `json:"uuid"`
	Section string   `json:"section"`
	Missing []string `json:"missing,omitempty"`
	Reason  string   `json:"reason"`
}

type ImportResponse struct {
	Edits      int               `json:"edits"`
	Executable bool              `json:"executable"`
	Applied    bool              `json:"applied"`
	Inherited  int               `json:"inherited"`
	Unmapped   []string          `json:"unmapped"`
	Failures   []FailureResponse `json:"failures"`
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := router.Group("/api/v1")
	{
		v1.GET("/export", s.export)
		v1.POST("/map", s.mapDocument)
		v1.POST("/import", s.importDocument)
	}
	return router
}

// Run serves until ctx is done and then shuts the listener down.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("listen", addr).Msg("http server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) export(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, err := s.service.Export(c.Request.Context(), app.ExportRequest{
		ModelPath: s.config.ModelPath,
		RootUUID:  s.root(c),
		Workspace: s.config.Workspace,
	})
	if err != nil {
		respondWithError(c, err, nil)
		return
	}
	data, err := s.service.Documents.Encode(result.Document)
	if err != nil {
		respondWithError(c, err, nil)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) mapDocument(c *gin.Context) {
	doc, ok := s.bindDocument(c)
	if !ok {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, err := s.service.Map(c.Request.Context(), app.MapRequest{
		ModelPath: s.config.ModelPath,
		RootUUID:  s.root(c),
		Document:  &doc,
	})
	if err != nil {
		respondWithError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, MapResponse{Mapping: result.Mapping, Unmapped: nonNil(result.Unmapped)})
}

func (s *Server) importDocument(c *gin.Context) {
	dryRun := false
	if raw := c.Query("dry_run"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(c, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("dry_run must be a boolean").
				WithCause(err), nil)
			return
		}
		dryRun = parsed
	}
	doc, ok := s.bindDocument(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := s.service.Import(c.Request.Context(), app.ImportRequest{
		ModelPath: s.config.ModelPath,
		RootUUID:  s.root(c),
		Document:  &doc,
		Workspace: s.config.Workspace,
		DryRun:    dryRun,
		Propagate: s.config.Propagate,
	})
	response := importResponse(result)
	if err != nil {
		respondWithError(c, err, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) bindDocument(c *gin.Context) (types.Document, bool) {
	data, err := c.GetRawData()
	if err != nil {
		respondWithError(c, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read request body").
			WithCause(err), nil)
		return types.Document{}, false
	}
	doc, err := s.service.Documents.Decode(data)
	if err != nil {
		respondWithError(c, err, nil)
		return types.Document{}, false
	}
	return doc, true
}

func (s *Server) root(c *gin.Context) string {
	if root := strings.TrimSpace(c.Query("root")); root != "" {
		return root
	}
	return s.config.RootUUID
}

func importResponse(result app.ImportResult) ImportResponse {
	failures := make([]FailureResponse, 0, len(result.Failures))
	for _, failure := range result.Failures {
		failures = append(failures, FailureResponse{
			UUID:    failure.UUID,
			Section: failure.Section,
			Missing: failure.Missing,
			Reason:  failure.Reason,
		})
	}
	return ImportResponse{
		Edits:      result.Edits,
		Executable: result.Executable,
		Applied:    result.Applied,
		Inherited:  result.Inherited,
		Unmapped:   nonNil(result.Unmapped),
		Failures:   failures,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
