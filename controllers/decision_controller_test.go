package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coliving_server/models"
	"coliving_server/services"
)

func newDecisionTestRouter(t *testing.T) (*mux.Router, *services.MemoryProfileStore) {
	t.Helper()
	profiles := services.NewMemoryProfileStore()
	service := services.NewDecisionService(
		services.NewMemoryDecisionStore(),
		services.NewMemoryMatchStore(),
		profiles,
		services.NopPublisher{},
		zap.NewNop(),
	)
	controller := NewDecisionController(service)

	r := mux.NewRouter()
	r.HandleFunc("/api/decision/record", controller.HandleRecordDecision).Methods("POST")
	r.HandleFunc("/api/decision/undo", controller.HandleUndoLast).Methods("POST")
	return r, profiles
}

func addActiveProfile(profiles *services.MemoryProfileStore, id string) {
	profiles.Add(models.Profile{
		ProfileID:   id,
		Kind:        models.ProfileKindPerson,
		Active:      true,
		AttrVersion: 1,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
}

func postJSON(t *testing.T, router *mux.Router, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleRecordDecision(t *testing.T) {
	router, profiles := newDecisionTestRouter(t)
	addActiveProfile(profiles, "alice")
	addActiveProfile(profiles, "bob")

	rec := postJSON(t, router, "/api/decision/record", map[string]string{
		"actorId": "alice", "subjectId": "bob", "verdict": "like",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.DecisionResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "alice", result.Decision.ActorID)
	assert.Nil(t, result.Match)

	// The reverse like completes the match.
	rec = postJSON(t, router, "/api/decision/record", map[string]string{
		"actorId": "bob", "subjectId": "alice", "verdict": "like",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	require.NotNil(t, result.Match)
	assert.Equal(t, models.PairKey("alice", "bob"), result.Match.PairID)
}

func TestHandleRecordDecisionErrors(t *testing.T) {
	router, profiles := newDecisionTestRouter(t)
	addActiveProfile(profiles, "alice")
	addActiveProfile(profiles, "bob")

	cases := []struct {
		name string
		body map[string]string
		code int
	}{
		{"missing fields", map[string]string{"actorId": "alice"}, http.StatusBadRequest},
		{"invalid verdict", map[string]string{"actorId": "alice", "subjectId": "bob", "verdict": "maybe"}, http.StatusBadRequest},
		{"self decision", map[string]string{"actorId": "alice", "subjectId": "alice", "verdict": "like"}, http.StatusBadRequest},
		{"unknown subject", map[string]string{"actorId": "alice", "subjectId": "ghost", "verdict": "like"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/decision/record", tc.body)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestHandleUndoLast(t *testing.T) {
	router, profiles := newDecisionTestRouter(t)
	addActiveProfile(profiles, "alice")
	addActiveProfile(profiles, "bob")

	// Nothing recorded yet.
	rec := postJSON(t, router, "/api/decision/undo", map[string]string{"actorId": "alice"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = postJSON(t, router, "/api/decision/record", map[string]string{
		"actorId": "alice", "subjectId": "bob", "verdict": "pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/api/decision/undo", map[string]string{"actorId": "alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Message string         `json:"message"`
		Profile models.Profile `json:"profile"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "bob", response.Profile.ProfileID)
}

func TestHandleUndoLastRefusesMatched(t *testing.T) {
	router, profiles := newDecisionTestRouter(t)
	addActiveProfile(profiles, "alice")
	addActiveProfile(profiles, "bob")

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		rec := postJSON(t, router, "/api/decision/record", map[string]string{
			"actorId": pair[0], "subjectId": pair[1], "verdict": "like",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := postJSON(t, router, "/api/decision/undo", map[string]string{"actorId": "alice"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Contains(t, response["message"], "match")
}
