package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"coliving_server/models"
	"coliving_server/services"
)

// FeedController serves the recommendation feed.
type FeedController struct {
	FeedService *services.FeedService
}

// NewFeedController creates a new FeedController instance.
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// HandleNextBatch returns the next batch of candidates for an actor,
// ordered by compatibility.
func (fc *FeedController) HandleNextBatch(w http.ResponseWriter, r *http.Request) {
	actorID := r.URL.Query().Get("actorId")
	if actorID == "" {
		http.Error(w, "actorId is required", http.StatusBadRequest)
		return
	}

	batchSize := 0
	if raw := r.URL.Query().Get("batchSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "batchSize must be a non-negative integer", http.StatusBadRequest)
			return
		}
		batchSize = parsed
	}

	batch, err := fc.FeedService.NextBatch(r.Context(), actorID, batchSize)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"actorId": actorID,
		"batch":   batch,
	})
}
