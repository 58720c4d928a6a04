package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/yskddk/smart-hive-udp-server/internal/controller"
)

// SetupRouter registers the status routes.
func SetupRouter(c *controller.StatusController) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", c.HandleHealth).Methods(http.MethodGet)
	router.HandleFunc("/stats", c.HandleStats).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(c.HandleNotFound)

	return router
}

// NewHandler wraps the status router with CORS for the allowed origins.
func NewHandler(c *controller.StatusController, allowedOrigins []string) http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Content-Type"},
	})
	return corsHandler.Handler(SetupRouter(c))
}
