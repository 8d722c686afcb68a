package api

import (
	"github.com/gorilla/mux"
	"github.com/ivaohu/ivao-tracker/models"
	"github.com/ivaohu/ivao-tracker/tracker"
)

// Tracker exposes cycle counters to the status endpoint.
type Tracker interface {
	Stats() tracker.CycleStats
}

// SessionReader reads the currently-open sessions from the store.
type SessionReader interface {
	OnlineATCs() ([]models.ATCSession, error)
	OnlinePilots() ([]models.PilotSession, error)
}

// NewRouter creates and configures a router with the read-only status
// endpoints.
func NewRouter(t Tracker, sessions SessionReader) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(RateLimit)

	api.HandleFunc("/status", GetStatus(t)).Methods("GET")
	api.HandleFunc("/online/atcs", GetOnlineATCs(sessions)).Methods("GET")
	api.HandleFunc("/online/pilots", GetOnlinePilots(sessions)).Methods("GET")

	return r
}
