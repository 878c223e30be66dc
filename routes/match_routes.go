package routes

import (
	"coliving_server/controllers"
	"coliving_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up match listing routes under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	r.HandleFunc("/api/matches", controller.HandleGetMatches).Methods("GET")
}
