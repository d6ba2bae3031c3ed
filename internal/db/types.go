package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session status constants
const (
	SessionStatusProcessing = "processing"
	SessionStatusCompleted  = "completed"
	SessionStatusFailed     = "failed"
)

// Lead priority bounds; priorities outside the range are clamped on insert.
const (
	LeadPriorityMin     = 1
	LeadPriorityMax     = 5
	LeadPriorityDefault = 3
)

// OnboardingSession represents one submitted business and its analysis lifecycle
type OnboardingSession struct {
	ID                  uuid.UUID `json:"id"`
	BusinessName        string    `json:"business_name"`
	BusinessDescription string    `json:"business_description"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Terminal reports whether the session has reached a final state
func (s *OnboardingSession) Terminal() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusFailed
}

// BusinessAnalysis holds the structured result of a completed analysis run
type BusinessAnalysis struct {
	ID                     uuid.UUID       `json:"id"`
	SessionID              uuid.UUID       `json:"session_id"`
	MarketViability        string          `json:"market_viability"`
	MarketSize             string          `json:"market_size"`
	CompetitorAnalysis     json.RawMessage `json:"competitor_analysis"`
	CustomerSegments       json.RawMessage `json:"customer_segments"`
	PainPoints             json.RawMessage `json:"pain_points"`
	MarketTrends           json.RawMessage `json:"market_trends"`
	BrutalHonestAssessment string          `json:"brutal_honest_assessment"`
	Recommendations        string          `json:"recommendations"`
	CreatedAt              time.Time       `json:"created_at"`
}

// BusinessAnalysisInput is used when persisting a completed analysis
type BusinessAnalysisInput struct {
	MarketViability        string
	MarketSize             string
	CompetitorAnalysis     []any
	CustomerSegments       []any
	PainPoints             []any
	MarketTrends           []any
	BrutalHonestAssessment string
	Recommendations        string
}

// PilotLead is a candidate pilot customer identified during analysis
type PilotLead struct {
	ID               uuid.UUID `json:"id"`
	SessionID        uuid.UUID `json:"session_id"`
	LeadSource       string    `json:"lead_source"`
	LeadURL          string    `json:"lead_url"`
	LeadTitle        string    `json:"lead_title"`
	LeadDescription  string    `json:"lead_description"`
	ContactInfo      string    `json:"contact_info"`
	PainPointMatch   string    `json:"pain_point_match"`
	OutreachStrategy string    `json:"outreach_strategy"`
	Priority         int       `json:"priority"`
	CreatedAt        time.Time `json:"created_at"`
}

// PilotLeadInput is used when persisting leads for a session
type PilotLeadInput struct {
	LeadSource       string
	LeadURL          string
	LeadTitle        string
	LeadDescription  string
	ContactInfo      string
	PainPointMatch   string
	OutreachStrategy string
	Priority         int
}

// ResearchResult records a single research-tool invocation made during an agent run
type ResearchResult struct {
	ID           uuid.UUID       `json:"id"`
	SessionID    uuid.UUID       `json:"session_id"`
	ToolUsed     string          `json:"tool_used"`
	Query        string          `json:"query"`
	Results      json.RawMessage `json:"results"`
	Summary      string          `json:"summary"`
	TotalResults int             `json:"total_results"`
	CreatedAt    time.Time       `json:"created_at"`
}

// clampPriority keeps a lead priority inside [LeadPriorityMin, LeadPriorityMax],
// defaulting to LeadPriorityDefault when unset.
func clampPriority(p int) int {
	if p == 0 {
		return LeadPriorityDefault
	}
	if p < LeadPriorityMin {
		return LeadPriorityMin
	}
	if p > LeadPriorityMax {
		return LeadPriorityMax
	}
	return p
}
