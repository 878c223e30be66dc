package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coliving_server/config"
	"coliving_server/models"
	"coliving_server/services"
)

func newScoreTestRouter(t *testing.T) (*mux.Router, *services.MemoryProfileStore) {
	t.Helper()
	profiles := services.NewMemoryProfileStore()
	features := &services.FeatureService{
		Profiles: profiles,
		Cache:    services.NewMemoryVectorCache(),
		Scoring:  config.DefaultScoring(),
		Log:      zap.NewNop(),
	}
	controller := NewScoreController(features, &services.ScoreService{Scoring: config.DefaultScoring()})

	r := mux.NewRouter()
	r.HandleFunc("/api/score", controller.HandleScorePair).Methods("GET")
	return r, profiles
}

func addScoreProfile(profiles *services.MemoryProfileStore, id string, attrs map[string]models.AttributeValue) {
	profiles.Add(models.Profile{
		ProfileID:   id,
		Kind:        models.ProfileKindPerson,
		Attributes:  attrs,
		Active:      true,
		AttrVersion: 1,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
}

func getScore(t *testing.T, router *mux.Router, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleScorePair(t *testing.T) {
	router, profiles := newScoreTestRouter(t)
	attrs := map[string]models.AttributeValue{
		services.AttrBudget:     models.SpanAttr(800, 1000),
		services.AttrCoreValues: models.SetAttr("sustainability"),
	}
	addScoreProfile(profiles, "alice", attrs)
	addScoreProfile(profiles, "bob", attrs)

	rec := getScore(t, router, "/api/score?profileA=alice&profileB=bob")
	require.Equal(t, http.StatusOK, rec.Code)

	var score models.CompatibilityScore
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&score))
	assert.False(t, score.Insufficient)
	assert.Equal(t, 75, score.Overall)
}

func TestHandleScorePairInsufficientIsNotAnError(t *testing.T) {
	router, profiles := newScoreTestRouter(t)
	addScoreProfile(profiles, "alice", nil)
	addScoreProfile(profiles, "bob", nil)

	rec := getScore(t, router, "/api/score?profileA=alice&profileB=bob")
	require.Equal(t, http.StatusOK, rec.Code)

	var score models.CompatibilityScore
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&score))
	assert.True(t, score.Insufficient)
}

func TestHandleScorePairErrors(t *testing.T) {
	router, profiles := newScoreTestRouter(t)
	addScoreProfile(profiles, "alice", nil)

	rec := getScore(t, router, "/api/score?profileA=alice")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = getScore(t, router, "/api/score?profileA=alice&profileB=ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
