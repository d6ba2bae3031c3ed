package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/pilotfinder/internal/onboarding"
)

// OnboardRequest represents the request body for POST /api/onboard
type OnboardRequest struct {
	BusinessName        string `json:"businessName" validate:"required"`
	BusinessDescription string `json:"businessDescription" validate:"required"`
}

// OnboardResponse represents the response for POST /api/onboard
type OnboardResponse struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// handleSubmitOnboarding accepts a business submission and starts the
// background analysis. The session id is returned immediately; the analysis
// may take minutes and is observed by polling GET /api/onboard.
func (s *Server) handleSubmitOnboarding(w http.ResponseWriter, r *http.Request) {
	var req OnboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Business name and description are required")
		return
	}

	sessionID, err := s.onboarding.Submit(r.Context(), req.BusinessName, req.BusinessDescription)
	if err != nil {
		var verr *onboarding.ErrValidation
		if errors.As(err, &verr) {
			s.errorResponse(w, http.StatusBadRequest, verr.Message)
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to start onboarding analysis")
		return
	}

	s.jsonResponse(w, http.StatusAccepted, OnboardResponse{
		SessionID: sessionID.String(),
		Status:    "processing",
		Message:   "Onboarding analysis started. This may take a few minutes.",
	})
}

// handleOnboardingStatus returns the session and, once completed, its
// analysis and leads (leads sorted by priority descending).
// Recommended client poll interval: ~3 seconds.
func (s *Server) handleOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("sessionId")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	sessionID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	status, err := s.onboarding.Status(r.Context(), sessionID)
	if err != nil {
		var nferr *onboarding.ErrSessionNotFound
		if errors.As(err, &nferr) {
			s.errorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load session status")
		return
	}

	s.jsonResponse(w, http.StatusOK, status)
}
