package api

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// GetStatus returns the tracker's cycle counters.
func GetStatus(t Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, t.Stats())
	}
}

// GetOnlineATCs returns every currently-open controller session.
func GetOnlineATCs(sessions SessionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atcs, err := sessions.OnlineATCs()
		if err != nil {
			http.Error(w, "Failed to load online ATCs", http.StatusInternalServerError)
			return
		}
		writeJSON(w, atcs)
	}
}

// GetOnlinePilots returns every currently-open pilot session.
func GetOnlinePilots(sessions SessionReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pilots, err := sessions.OnlinePilots()
		if err != nil {
			http.Error(w, "Failed to load online pilots", http.StatusInternalServerError)
			return
		}
		writeJSON(w, pilots)
	}
}
