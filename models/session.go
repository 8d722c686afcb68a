package models

import "time"

// ATCSession is a persisted controller session row.
type ATCSession struct {
	ID             int64      `json:"id"`
	Callsign       string     `json:"callsign"`
	VID            string     `json:"vid"`
	Status         string     `json:"status"`
	Rating         string     `json:"rating"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Server         string     `json:"server"`
	Protocol       string     `json:"protocol"`
	Software       string     `json:"software"`
	Frequency      string     `json:"frequency"`
	RadarRange     int        `json:"radar_range"`
	Atis           string     `json:"atis"`
	AtisTime       string     `json:"atis_time"`
	Online         bool       `json:"online"`
	ConnectedAt    time.Time  `json:"connected_at"`
	DisconnectedAt *time.Time `json:"disconnected_at,omitempty"`
	LastTrackedAt  time.Time  `json:"last_tracked_at"`
}

// PilotSession is a persisted pilot session row.
type PilotSession struct {
	ID             int64      `json:"id"`
	Callsign       string     `json:"callsign"`
	VID            string     `json:"vid"`
	Status         string     `json:"status"`
	Rating         string     `json:"rating"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Server         string     `json:"server"`
	Protocol       string     `json:"protocol"`
	Software       string     `json:"software"`
	Heading        int        `json:"heading"`
	OnGround       bool       `json:"on_ground"`
	Altitude       int        `json:"altitude"`
	Groundspeed    int        `json:"groundspeed"`
	ModeA          string     `json:"mode_a"`
	FPAircraft     string     `json:"fp_aircraft"`
	FPSpeed        string     `json:"fp_speed"`
	FPRFL          string     `json:"fp_rfl"`
	FPDeparture    string     `json:"fp_departure"`
	FPDestination  string     `json:"fp_destination"`
	FPAlternate    string     `json:"fp_alternate"`
	FPAlternate2   string     `json:"fp_alternate2"`
	FPType         string     `json:"fp_type"`
	FPPOB          int        `json:"fp_pob"`
	FPRoute        string     `json:"fp_route"`
	FPItem18       string     `json:"fp_item18"`
	FPRev          int        `json:"fp_rev"`
	FPRule         string     `json:"fp_rule"`
	FPDeptime      string     `json:"fp_deptime"`
	FPEET          string     `json:"fp_eet"`
	FPEndurance    string     `json:"fp_endurance"`
	SimType        string     `json:"sim_type"`
	Online         bool       `json:"online"`
	ConnectedAt    time.Time  `json:"connected_at"`
	DisconnectedAt *time.Time `json:"disconnected_at,omitempty"`
	LastTrackedAt  time.Time  `json:"last_tracked_at"`
}

func (s ATCSession) OpenSession() OpenSession {
	return OpenSession{
		ID: s.ID,
		Identity: Identity{
			Callsign:    s.Callsign,
			VID:         s.VID,
			ConnectedAt: FormatTime(s.ConnectedAt),
			Software:    s.Software,
		},
	}
}

func (s PilotSession) OpenSession() OpenSession {
	return OpenSession{
		ID: s.ID,
		Identity: Identity{
			Callsign:    s.Callsign,
			VID:         s.VID,
			ConnectedAt: FormatTime(s.ConnectedAt),
			Software:    s.Software,
		},
	}
}
