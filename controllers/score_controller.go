package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"coliving_server/models"
	"coliving_server/services"
)

// ScoreController exposes on-demand pairwise compatibility scores.
type ScoreController struct {
	FeatureService *services.FeatureService
	ScoreService   *services.ScoreService
}

// NewScoreController creates a new ScoreController instance.
func NewScoreController(featureService *services.FeatureService, scoreService *services.ScoreService) *ScoreController {
	return &ScoreController{FeatureService: featureService, ScoreService: scoreService}
}

// HandleScorePair computes the compatibility score between two profiles.
// An insufficient-data pair is returned with its marker set, not as an
// error, so the dashboard can show "not enough data" instead of failing.
func (sc *ScoreController) HandleScorePair(w http.ResponseWriter, r *http.Request) {
	profileA := r.URL.Query().Get("profileA")
	profileB := r.URL.Query().Get("profileB")
	if profileA == "" || profileB == "" {
		http.Error(w, "profileA and profileB are required", http.StatusBadRequest)
		return
	}

	vectorA, err := sc.FeatureService.VectorForProfile(r.Context(), profileA)
	if err != nil {
		respondScoreError(w, err)
		return
	}
	vectorB, err := sc.FeatureService.VectorForProfile(r.Context(), profileB)
	if err != nil {
		respondScoreError(w, err)
		return
	}

	score := sc.ScoreService.Score(vectorA, vectorB)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(score)
}

func respondScoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrProfileNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
