// Package server provides the HTTP REST API for PilotFinder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/pilotfinder/internal/agent"
	"github.com/jonathan/pilotfinder/internal/config"
	"github.com/jonathan/pilotfinder/internal/db"
	"github.com/jonathan/pilotfinder/internal/llm"
	"github.com/jonathan/pilotfinder/internal/onboarding"
	"github.com/jonathan/pilotfinder/internal/research"
)

// Onboarding is the orchestrator surface the handlers need
type Onboarding interface {
	Submit(ctx context.Context, businessName, businessDescription string) (uuid.UUID, error)
	Status(ctx context.Context, id uuid.UUID) (*onboarding.StatusResult, error)
}

// Search is the optional web-search passthrough capability
type Search interface {
	Search(ctx context.Context, query string, limit int) ([]research.SearchResult, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	onboarding Onboarding
	searcher   Search
	validate   *validator.Validate
}

// New creates a new server instance wired to the database, the LLM client,
// and (when configured) web search.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	llmClient, err := llm.NewClient(ctx, &llm.Config{
		Provider:    llm.ProviderGemini,
		Model:       cfg.Model,
		Temperature: llm.DefaultTemperature,
	}, cfg.GeminiAPIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var searcher agent.Searcher
	var passthrough Search
	if cfg.SearchEnabled() {
		s, err := research.NewSearcher(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create searcher: %w", err)
		}
		searcher = s
		passthrough = s
	} else {
		log.Printf("[SERVER] Web search not configured; agent runs prompt-only")
	}

	onboardingAgent := agent.New(llmClient, searcher, database, agent.Options{
		MaxQueries: cfg.MaxResearchQueries,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	s := &Server{
		db:         database,
		onboarding: onboarding.NewService(database, onboardingAgent, cfg.AgentTimeout(), cfg.Verbose),
		searcher:   passthrough,
		validate:   validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// routes builds the request mux
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/onboard", s.handleSubmitOnboarding)
	mux.HandleFunc("GET /api/onboard", s.handleOnboardingStatus)
	mux.HandleFunc("GET /api/websearch", s.handleWebSearch)
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
// In-flight analysis goroutines are not awaited; their sessions simply finish
// or stay processing until resubmitted.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Printf("[SERVER] Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	s.db.Close()
	return nil
}

// handleHealth reports service and database health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "database unreachable")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response with the given status code
func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[SERVER] Failed to encode response: %v", err)
	}
}

// errorResponse writes a JSON error response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
