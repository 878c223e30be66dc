package routes

import (
	"coliving_server/controllers"
	"coliving_server/services"

	"github.com/gorilla/mux"
)

// RegisterGroupRoutes sets up group-compatibility routes under /api/group
func RegisterGroupRoutes(r *mux.Router, groupService *services.GroupService) {
	controller := controllers.NewGroupController(groupService)

	groupRouter := r.PathPrefix("/api/group").Subrouter()
	groupRouter.HandleFunc("/score", controller.HandleScoreCandidate).Methods("GET")
	groupRouter.HandleFunc("/rank", controller.HandleRankCandidates).Methods("POST")
}
