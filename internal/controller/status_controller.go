package controller

import (
	"fmt"
	"net/http"

	"github.com/yskddk/smart-hive-udp-server/internal/models"
	"github.com/yskddk/smart-hive-udp-server/internal/utils"
)

// StatsProvider exposes the forwarder counters.
type StatsProvider interface {
	Stats() models.ForwarderStats
}

// StatusController serves the read-only status endpoints.
type StatusController struct {
	stats StatsProvider
}

// NewStatusController creates a new StatusController.
func NewStatusController(stats StatsProvider) *StatusController {
	return &StatusController{
		stats: stats,
	}
}

// HandleHealth reports that the process is up.
func (c *StatusController) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// HandleStats returns the forwarder counters as JSON.
func (c *StatusController) HandleStats(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.stats.Stats())
}

// HandleNotFound answers unknown paths with a JSON error.
func (c *StatusController) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithError(w, http.StatusNotFound, "not_found", fmt.Sprintf("no route for %s", r.URL.Path))
}
