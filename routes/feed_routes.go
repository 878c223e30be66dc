package routes

import (
	"coliving_server/controllers"
	"coliving_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedRoutes sets up the recommendation feed route under /api/feed
func RegisterFeedRoutes(r *mux.Router, feedService *services.FeedService) {
	controller := controllers.NewFeedController(feedService)

	r.HandleFunc("/api/feed", controller.HandleNextBatch).Methods("GET")
}
