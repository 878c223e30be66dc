package routes

import (
	"coliving_server/controllers"
	"coliving_server/services"

	"github.com/gorilla/mux"
)

// RegisterDecisionRoutes sets up routes for swipe decisions under /api/decision
func RegisterDecisionRoutes(r *mux.Router, decisionService *services.DecisionService) {
	controller := controllers.NewDecisionController(decisionService)

	decisionRouter := r.PathPrefix("/api/decision").Subrouter()
	decisionRouter.HandleFunc("/record", controller.HandleRecordDecision).Methods("POST")
	decisionRouter.HandleFunc("/undo", controller.HandleUndoLast).Methods("POST")
}
