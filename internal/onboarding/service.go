// Package onboarding implements the session orchestrator: it accepts a
// business description, records a processing session, runs the analysis agent
// in the background, and answers status polls until the session reaches a
// terminal state.
//
// State machine per session:
//
//	processing --(agent success + persist success)--> completed (terminal)
//	processing --(agent failure OR persist failure)--> failed    (terminal)
//
// Terminal states are final. There is no retry and no cancellation; a failed
// session must be resubmitted as a new session.
package onboarding

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/pilotfinder/internal/analysis"
	"github.com/jonathan/pilotfinder/internal/db"
)

// DefaultAgentTimeout bounds a single background analysis run. The agent may
// legitimately take minutes of research; a deadline hit is treated like any
// other agent failure.
const DefaultAgentTimeout = 10 * time.Minute

// failWriteTimeout bounds the status write on the failure path, which runs on
// a fresh context because the run context may already be dead.
const failWriteTimeout = 30 * time.Second

// Store is the persistence the orchestrator needs. *db.DB satisfies it.
type Store interface {
	CreateSession(ctx context.Context, businessName, businessDescription string) (*db.OnboardingSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*db.OnboardingSession, error)
	UpdateSessionStatus(ctx context.Context, id uuid.UUID, status string) error
	CompleteSession(ctx context.Context, sessionID uuid.UUID, analysis *db.BusinessAnalysisInput, leads []db.PilotLeadInput) error
	GetAnalysisBySession(ctx context.Context, sessionID uuid.UUID) (*db.BusinessAnalysis, error)
	ListLeadsBySession(ctx context.Context, sessionID uuid.UUID) ([]db.PilotLead, error)
}

// Generator produces the analysis narrative for a business. *agent.Agent
// satisfies it. Calls may take minutes.
type Generator interface {
	Generate(ctx context.Context, sessionID uuid.UUID, businessName, businessDescription string) (string, error)
}

// Service orchestrates onboarding sessions
type Service struct {
	store        Store
	generator    Generator
	agentTimeout time.Duration
	verbose      bool
}

// NewService creates a session orchestrator. agentTimeout <= 0 uses the default.
func NewService(store Store, generator Generator, agentTimeout time.Duration, verbose bool) *Service {
	if agentTimeout <= 0 {
		agentTimeout = DefaultAgentTimeout
	}
	return &Service{
		store:        store,
		generator:    generator,
		agentTimeout: agentTimeout,
		verbose:      verbose,
	}
}

// StatusResult is the full polling view of a session. Analysis is non-nil and
// Leads non-empty only when the session has completed.
type StatusResult struct {
	Session  *db.OnboardingSession `json:"session"`
	Analysis *db.BusinessAnalysis  `json:"analysis"`
	Leads    []db.PilotLead        `json:"leads"`
}

// Submit validates the business input, durably creates a processing session,
// and schedules the analysis to run in the background. The session row is
// committed before this returns, so an immediate poll sees a valid record.
// The background task carries no connection back to the caller; its failures
// surface only as status=failed.
func (s *Service) Submit(ctx context.Context, businessName, businessDescription string) (uuid.UUID, error) {
	businessName = strings.TrimSpace(businessName)
	businessDescription = strings.TrimSpace(businessDescription)

	if businessName == "" {
		return uuid.Nil, &ErrValidation{Field: "businessName", Message: "business name is required"}
	}
	if businessDescription == "" {
		return uuid.Nil, &ErrValidation{Field: "businessDescription", Message: "business description is required"}
	}

	session, err := s.store.CreateSession(ctx, businessName, businessDescription)
	if err != nil {
		return uuid.Nil, err
	}

	go s.runAnalysis(session.ID, businessName, businessDescription)

	return session.ID, nil
}

// Status returns the session and, once completed, its analysis and leads
// (leads sorted by priority descending). Pure read.
// Clients typically poll this every few seconds; 3s is a sensible cadence.
func (s *Service) Status(ctx context.Context, id uuid.UUID) (*StatusResult, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, &ErrSessionNotFound{SessionID: id}
	}

	result := &StatusResult{
		Session: session,
		Leads:   []db.PilotLead{},
	}

	if session.Status != db.SessionStatusCompleted {
		return result, nil
	}

	result.Analysis, err = s.store.GetAnalysisBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	result.Leads, err = s.store.ListLeadsBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// runAnalysis is the fire-and-forget background task. It owns all writes for
// its session id; no other writer is ever scheduled for the same session, so
// the processing -> terminal transition needs no locking beyond row updates.
func (s *Service) runAnalysis(sessionID uuid.UUID, businessName, businessDescription string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ONBOARD] Panic in analysis for session %s: %v", sessionID, r)
			s.markFailed(sessionID)
		}
	}()

	// Detached from the submitting request: the HTTP handler has long
	// returned by the time this finishes.
	ctx, cancel := context.WithTimeout(context.Background(), s.agentTimeout)
	defer cancel()

	if s.verbose {
		log.Printf("[ONBOARD] Starting analysis for session %s (%s)", sessionID, businessName)
	}

	narrative, err := s.generator.Generate(ctx, sessionID, businessName, businessDescription)
	if err != nil {
		log.Printf("[ONBOARD] Agent failed for session %s: %v", sessionID, err)
		s.markFailed(sessionID)
		return
	}

	parsed := analysis.Parse(narrative)

	analysisInput := &db.BusinessAnalysisInput{
		MarketViability:        parsed.MarketViability,
		MarketSize:             parsed.MarketSize,
		CompetitorAnalysis:     parsed.CompetitorAnalysis,
		CustomerSegments:       parsed.CustomerSegments,
		PainPoints:             parsed.PainPoints,
		MarketTrends:           parsed.MarketTrends,
		BrutalHonestAssessment: parsed.BrutalHonestAssessment,
		Recommendations:        parsed.Recommendations,
	}

	if err := s.store.CompleteSession(ctx, sessionID, analysisInput, leadInputs(parsed.Leads)); err != nil {
		log.Printf("[ONBOARD] Failed to persist results for session %s: %v", sessionID, err)
		s.markFailed(sessionID)
		return
	}

	if s.verbose {
		log.Printf("[ONBOARD] Session %s completed: viability=%s size=%s leads=%d",
			sessionID, parsed.MarketViability, parsed.MarketSize, len(parsed.Leads))
	}
}

// markFailed transitions the session to failed on a fresh context. The guard
// in the store keeps terminal sessions terminal, so this can never regress a
// completed session.
func (s *Service) markFailed(sessionID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), failWriteTimeout)
	defer cancel()

	if err := s.store.UpdateSessionStatus(ctx, sessionID, db.SessionStatusFailed); err != nil {
		log.Printf("[ONBOARD] Failed to mark session %s as failed: %v", sessionID, err)
	}
}

// leadInputs converts parsed leads to store inputs, applying the documented
// defaults for absent fields.
func leadInputs(leads []analysis.Lead) []db.PilotLeadInput {
	inputs := make([]db.PilotLeadInput, 0, len(leads))
	for _, lead := range leads {
		input := db.PilotLeadInput{
			LeadSource:       lead.Source,
			LeadURL:          lead.URL,
			LeadTitle:        lead.Title,
			LeadDescription:  lead.Description,
			ContactInfo:      lead.Contact,
			PainPointMatch:   lead.PainPointMatch,
			OutreachStrategy: lead.OutreachStrategy,
			Priority:         lead.Priority,
		}
		if input.LeadSource == "" {
			input.LeadSource = "research"
		}
		if input.LeadTitle == "" {
			input.LeadTitle = "Potential Lead"
		}
		inputs = append(inputs, input)
	}
	return inputs
}
