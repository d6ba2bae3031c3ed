package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pilotfinder/internal/db"
	"github.com/jonathan/pilotfinder/internal/onboarding"
)

func TestHandleSubmitOnboarding_Success(t *testing.T) {
	sessionID := uuid.New()
	fake := &fakeOnboarding{submitID: sessionID}
	s := newTestServer(fake, nil)

	body := `{"businessName":"Acme","businessDescription":"Widget subscription box"}`
	req := httptest.NewRequest(http.MethodPost, "/api/onboard", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleSubmitOnboarding(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp OnboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, sessionID.String(), resp.SessionID)
	assert.Equal(t, "processing", resp.Status)
	assert.Equal(t, "Acme", fake.gotName)
	assert.Equal(t, "Widget subscription box", fake.gotDesc)
}

func TestHandleSubmitOnboarding_InvalidBody(t *testing.T) {
	s := newTestServer(&fakeOnboarding{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/onboard", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	s.handleSubmitOnboarding(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSubmitOnboarding_MissingFields(t *testing.T) {
	tests := []string{
		`{}`,
		`{"businessName":"Acme"}`,
		`{"businessDescription":"Widgets"}`,
		`{"businessName":"","businessDescription":"Widgets"}`,
	}

	for _, body := range tests {
		s := newTestServer(&fakeOnboarding{}, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/onboard", strings.NewReader(body))
		w := httptest.NewRecorder()

		s.handleSubmitOnboarding(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["error"])
	}
}

func TestHandleSubmitOnboarding_ServiceValidationError(t *testing.T) {
	fake := &fakeOnboarding{submitErr: &onboarding.ErrValidation{
		Field: "businessName", Message: "business name is required",
	}}
	s := newTestServer(fake, nil)

	// Whitespace-only passes the struct tag check but fails service trimming
	body := `{"businessName":"   ","businessDescription":"Widgets"}`
	req := httptest.NewRequest(http.MethodPost, "/api/onboard", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleSubmitOnboarding(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "business name is required")
}

func TestHandleOnboardingStatus_MissingID(t *testing.T) {
	s := newTestServer(&fakeOnboarding{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboard", nil)
	w := httptest.NewRecorder()

	s.handleOnboardingStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Session ID is required")
}

func TestHandleOnboardingStatus_InvalidID(t *testing.T) {
	s := newTestServer(&fakeOnboarding{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboard?sessionId=not-a-uuid", nil)
	w := httptest.NewRecorder()

	s.handleOnboardingStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid session ID")
}

func TestHandleOnboardingStatus_NotFound(t *testing.T) {
	fake := &fakeOnboarding{statusErr: &onboarding.ErrSessionNotFound{SessionID: uuid.New()}}
	s := newTestServer(fake, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboard?sessionId="+uuid.NewString(), nil)
	w := httptest.NewRecorder()

	s.handleOnboardingStatus(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleOnboardingStatus_Processing(t *testing.T) {
	sessionID := uuid.New()
	fake := &fakeOnboarding{status: &onboarding.StatusResult{
		Session: &db.OnboardingSession{
			ID:        sessionID,
			Status:    db.SessionStatusProcessing,
			CreatedAt: time.Now(),
		},
		Leads: []db.PilotLead{},
	}}
	s := newTestServer(fake, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboard?sessionId="+sessionID.String(), nil)
	w := httptest.NewRecorder()

	s.handleOnboardingStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session  db.OnboardingSession `json:"session"`
		Analysis *db.BusinessAnalysis `json:"analysis"`
		Leads    []db.PilotLead       `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, db.SessionStatusProcessing, resp.Session.Status)
	assert.Nil(t, resp.Analysis)
	assert.Empty(t, resp.Leads)
}

func TestHandleOnboardingStatus_Completed(t *testing.T) {
	sessionID := uuid.New()
	fake := &fakeOnboarding{status: &onboarding.StatusResult{
		Session: &db.OnboardingSession{ID: sessionID, Status: db.SessionStatusCompleted},
		Analysis: &db.BusinessAnalysis{
			SessionID:              sessionID,
			MarketViability:        "viable",
			BrutalHonestAssessment: "honest words",
		},
		Leads: []db.PilotLead{
			{LeadTitle: "high", Priority: 5},
			{LeadTitle: "low", Priority: 1},
		},
	}}
	s := newTestServer(fake, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/onboard?sessionId="+sessionID.String(), nil)
	w := httptest.NewRecorder()

	s.handleOnboardingStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analysis *db.BusinessAnalysis `json:"analysis"`
		Leads    []db.PilotLead       `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Analysis)
	assert.Equal(t, "viable", resp.Analysis.MarketViability)
	require.Len(t, resp.Leads, 2)
	assert.Equal(t, "high", resp.Leads[0].LeadTitle)
}
