package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateSession inserts a new onboarding session with status=processing.
// The row is committed before this returns, so an immediate status poll sees it.
func (db *DB) CreateSession(ctx context.Context, businessName, businessDescription string) (*OnboardingSession, error) {
	var session OnboardingSession
	err := db.pool.QueryRow(ctx,
		`INSERT INTO onboarding_sessions (business_name, business_description, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, business_name, business_description, status, created_at, updated_at`,
		businessName, businessDescription, SessionStatusProcessing,
	).Scan(&session.ID, &session.BusinessName, &session.BusinessDescription,
		&session.Status, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create onboarding session: %w", err)
	}
	return &session, nil
}

// GetSession retrieves an onboarding session by ID. Returns nil if not found.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*OnboardingSession, error) {
	var session OnboardingSession
	err := db.pool.QueryRow(ctx,
		`SELECT id, business_name, business_description, status, created_at, updated_at
		 FROM onboarding_sessions WHERE id = $1`,
		id,
	).Scan(&session.ID, &session.BusinessName, &session.BusinessDescription,
		&session.Status, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get onboarding session: %w", err)
	}
	return &session, nil
}

// UpdateSessionStatus transitions a session to a new status and refreshes updated_at.
// Terminal states are final: a session already completed or failed is never moved.
func (db *DB) UpdateSessionStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE onboarding_sessions SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status = $3`,
		status, id, SessionStatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	return nil
}

// CompleteSession persists the analysis row and all lead rows and flips the
// session to completed, all in a single transaction. Either everything is
// committed or nothing is, so analysis and leads are never visible unless the
// session status is completed. Fails if the session is not in processing.
func (db *DB) CompleteSession(ctx context.Context, sessionID uuid.UUID, analysis *BusinessAnalysisInput, leads []PilotLeadInput) error {
	competitors, err := marshalList(analysis.CompetitorAnalysis)
	if err != nil {
		return fmt.Errorf("failed to marshal competitor analysis: %w", err)
	}
	segments, err := marshalList(analysis.CustomerSegments)
	if err != nil {
		return fmt.Errorf("failed to marshal customer segments: %w", err)
	}
	painPoints, err := marshalList(analysis.PainPoints)
	if err != nil {
		return fmt.Errorf("failed to marshal pain points: %w", err)
	}
	trends, err := marshalList(analysis.MarketTrends)
	if err != nil {
		return fmt.Errorf("failed to marshal market trends: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.Exec(ctx,
		`INSERT INTO business_analysis (session_id, market_viability, market_size,
		   competitor_analysis, customer_segments, pain_points, market_trends,
		   brutal_honest_assessment, recommendations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sessionID, analysis.MarketViability, analysis.MarketSize,
		competitors, segments, painPoints, trends,
		analysis.BrutalHonestAssessment, analysis.Recommendations,
	)
	if err != nil {
		return fmt.Errorf("failed to save business analysis: %w", err)
	}

	for _, lead := range leads {
		_, err = tx.Exec(ctx,
			`INSERT INTO pilot_leads (session_id, lead_source, lead_url, lead_title,
			   lead_description, contact_info, pain_point_match, outreach_strategy, priority)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			sessionID, lead.LeadSource, lead.LeadURL, lead.LeadTitle,
			lead.LeadDescription, lead.ContactInfo, lead.PainPointMatch,
			lead.OutreachStrategy, clampPriority(lead.Priority),
		)
		if err != nil {
			return fmt.Errorf("failed to save pilot lead: %w", err)
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE onboarding_sessions SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status = $3`,
		SessionStatusCompleted, sessionID, SessionStatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s is not in processing state", sessionID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit analysis results: %w", err)
	}
	return nil
}

// GetAnalysisBySession retrieves the analysis for a session. Returns nil if not found.
func (db *DB) GetAnalysisBySession(ctx context.Context, sessionID uuid.UUID) (*BusinessAnalysis, error) {
	var a BusinessAnalysis
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, market_viability, market_size, competitor_analysis,
		        customer_segments, pain_points, market_trends,
		        brutal_honest_assessment, recommendations, created_at
		 FROM business_analysis WHERE session_id = $1`,
		sessionID,
	).Scan(&a.ID, &a.SessionID, &a.MarketViability, &a.MarketSize,
		&a.CompetitorAnalysis, &a.CustomerSegments, &a.PainPoints, &a.MarketTrends,
		&a.BrutalHonestAssessment, &a.Recommendations, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get business analysis: %w", err)
	}
	return &a, nil
}

// ListLeadsBySession retrieves all pilot leads for a session, highest priority first
func (db *DB) ListLeadsBySession(ctx context.Context, sessionID uuid.UUID) ([]PilotLead, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, lead_source, lead_url, lead_title, lead_description,
		        contact_info, pain_point_match, outreach_strategy, priority, created_at
		 FROM pilot_leads WHERE session_id = $1
		 ORDER BY priority DESC, created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pilot leads: %w", err)
	}
	defer rows.Close()

	leads := []PilotLead{}
	for rows.Next() {
		var l PilotLead
		if err := rows.Scan(&l.ID, &l.SessionID, &l.LeadSource, &l.LeadURL, &l.LeadTitle,
			&l.LeadDescription, &l.ContactInfo, &l.PainPointMatch, &l.OutreachStrategy,
			&l.Priority, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pilot lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pilot leads: %w", err)
	}
	return leads, nil
}

// SaveResearchResult records one research-tool invocation for a session
func (db *DB) SaveResearchResult(ctx context.Context, sessionID uuid.UUID, toolUsed, query string, results any, summary string, totalResults int) error {
	jsonBytes, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal research results: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO research_results (session_id, tool_used, query, results, summary, total_results)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sessionID, toolUsed, query, jsonBytes, summary, totalResults,
	)
	if err != nil {
		return fmt.Errorf("failed to save research result: %w", err)
	}
	return nil
}

// ListResearchResultsBySession retrieves all research results recorded for a session
func (db *DB) ListResearchResultsBySession(ctx context.Context, sessionID uuid.UUID) ([]ResearchResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, tool_used, query, results, summary, total_results, created_at
		 FROM research_results WHERE session_id = $1
		 ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list research results: %w", err)
	}
	defer rows.Close()

	results := []ResearchResult{}
	for rows.Next() {
		var r ResearchResult
		if err := rows.Scan(&r.ID, &r.SessionID, &r.ToolUsed, &r.Query, &r.Results,
			&r.Summary, &r.TotalResults, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan research result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read research results: %w", err)
	}
	return results, nil
}

// marshalList encodes a list field as JSON, defaulting nil to an empty array
func marshalList(items []any) ([]byte, error) {
	if items == nil {
		items = []any{}
	}
	return json.Marshal(items)
}
