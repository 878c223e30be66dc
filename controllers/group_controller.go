package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"coliving_server/models"
	"coliving_server/services"
)

// GroupController handles group-compatibility queries.
type GroupController struct {
	GroupService *services.GroupService
}

// NewGroupController creates a new GroupController instance.
func NewGroupController(groupService *services.GroupService) *GroupController {
	return &GroupController{GroupService: groupService}
}

// HandleScoreCandidate scores one candidate against all members of a group.
func (gc *GroupController) HandleScoreCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.URL.Query().Get("candidateId")
	groupID := r.URL.Query().Get("groupId")
	if candidateID == "" || groupID == "" {
		http.Error(w, "candidateId and groupId are required", http.StatusBadRequest)
		return
	}

	score, err := gc.GroupService.ScoreCandidateForGroup(r.Context(), candidateID, groupID)
	if err != nil {
		respondGroupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(score)
}

// HandleRankCandidates ranks a list of candidates for a group.
func (gc *GroupController) HandleRankCandidates(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GroupID      string   `json:"groupId"`
		CandidateIDs []string `json:"candidateIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.GroupID == "" || len(request.CandidateIDs) == 0 {
		http.Error(w, "groupId and candidateIds are required", http.StatusBadRequest)
		return
	}

	ranking, err := gc.GroupService.RankCandidates(r.Context(), request.GroupID, request.CandidateIDs)
	if err != nil {
		respondGroupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"groupId": request.GroupID,
		"ranking": ranking,
	})
}

func respondGroupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrGroupNotFound), errors.Is(err, models.ErrProfileNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
