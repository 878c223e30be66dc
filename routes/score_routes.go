package routes

import (
	"coliving_server/controllers"
	"coliving_server/services"

	"github.com/gorilla/mux"
)

// RegisterScoreRoutes sets up the pairwise score route under /api/score
func RegisterScoreRoutes(r *mux.Router, featureService *services.FeatureService, scoreService *services.ScoreService) {
	controller := controllers.NewScoreController(featureService, scoreService)

	r.HandleFunc("/api/score", controller.HandleScorePair).Methods("GET")
}
