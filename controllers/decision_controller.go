package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"coliving_server/models"
	"coliving_server/services"
)

// DecisionController handles HTTP requests for swipe decisions.
type DecisionController struct {
	DecisionService *services.DecisionService
}

// NewDecisionController creates a new DecisionController instance.
func NewDecisionController(decisionService *services.DecisionService) *DecisionController {
	return &DecisionController{DecisionService: decisionService}
}

// HandleRecordDecision records a like, superlike or pass.
func (dc *DecisionController) HandleRecordDecision(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ActorID   string `json:"actorId"`
		SubjectID string `json:"subjectId"`
		Verdict   string `json:"verdict"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ActorID == "" || request.SubjectID == "" || request.Verdict == "" {
		http.Error(w, "actorId, subjectId and verdict are required", http.StatusBadRequest)
		return
	}

	result, err := dc.DecisionService.RecordDecision(r.Context(), request.ActorID, request.SubjectID, request.Verdict)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidVerdict), errors.Is(err, models.ErrSelfDecision):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrProfileNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// HandleUndoLast reverts the actor's most recent decision and returns the
// restored profile.
func (dc *DecisionController) HandleUndoLast(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ActorID string `json:"actorId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ActorID == "" {
		http.Error(w, "actorId is required", http.StatusBadRequest)
		return
	}

	profile, err := dc.DecisionService.UndoLast(r.Context(), request.ActorID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNothingToUndo), errors.Is(err, models.ErrAlreadyMatched):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
		case errors.Is(err, models.ErrProfileNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Decision undone",
		"profile": profile,
	})
}
