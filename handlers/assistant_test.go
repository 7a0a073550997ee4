package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tablevoice/models"
	"tablevoice/services/dialogue"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDialogueService struct {
	resp  *models.TurnResponse
	err   error
	calls int
}

func (s *stubDialogueService) ProcessTurn(ctx context.Context, req models.TurnRequest) (*models.TurnResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTurnRouter(svc dialogue.DialogueService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAssistantHandler(svc)
	r.POST("/api/assistant/turn", h.TurnHandler)
	return r
}

func postTurn(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/turn", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTurnHandler_HappyPath(t *testing.T) {
	svc := &stubDialogueService{resp: &models.TurnResponse{
		Reply:          "Your table is booked.",
		BookingDetails: models.BookingDetails{Date: "2024-06-02", Guests: 4},
		Intent:         models.IntentConfirmed,
	}}
	r := newTurnRouter(svc)

	w := postTurn(t, r, `{"utterance": "yes, confirm"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Your table is booked.", got.Reply)
	assert.Equal(t, models.IntentConfirmed, got.Intent)
	assert.Equal(t, 4, got.BookingDetails.Guests)
}

func TestTurnHandler_MissingUtterance(t *testing.T) {
	svc := &stubDialogueService{}
	r := newTurnRouter(svc)

	w := postTurn(t, r, `{"history": []}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls, "service must not be reached")
}

func TestTurnHandler_MalformedBody(t *testing.T) {
	svc := &stubDialogueService{}
	r := newTurnRouter(svc)

	w := postTurn(t, r, `{"utterance": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestTurnHandler_ExtractionFailureReturnsBadGateway(t *testing.T) {
	svc := &stubDialogueService{err: &dialogue.ExtractionError{Reason: "malformed capability output"}}
	r := newTurnRouter(svc)

	w := postTurn(t, r, `{"utterance": "book a table"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Sorry, I couldn't process that")
}

func TestTurnHandler_UnexpectedErrorIsInternal(t *testing.T) {
	svc := &stubDialogueService{err: assert.AnError}
	r := newTurnRouter(svc)

	w := postTurn(t, r, `{"utterance": "book a table"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
