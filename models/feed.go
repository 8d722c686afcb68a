package models

// Whazzup is one snapshot of the live feed: everyone connected to the
// network at fetch time.
type Whazzup struct {
	ATCs   []ATC   `json:"atcs"`
	Pilots []Pilot `json:"pilots"`
}

// ATC is one controller row from the feed.
type ATC struct {
	Callsign    string  `json:"callsign"`
	VID         string  `json:"vid"`
	Status      string  `json:"status"`
	Rating      string  `json:"rating"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Server      string  `json:"server"`
	Protocol    string  `json:"protocol"`
	Software    string  `json:"software"`
	Frequency   string  `json:"frequency"`
	RadarRange  int     `json:"radar_range"`
	Atis        string  `json:"atis"`
	AtisTime    string  `json:"atis_time"`
	ConnectedAt string  `json:"connected_at"`
}

// Pilot is one pilot row from the feed, flight plan included.
type Pilot struct {
	Callsign      string  `json:"callsign"`
	VID           string  `json:"vid"`
	Status        string  `json:"status"`
	Rating        string  `json:"rating"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Server        string  `json:"server"`
	Protocol      string  `json:"protocol"`
	Software      string  `json:"software"`
	Heading       int     `json:"heading"`
	OnGround      bool    `json:"on_ground"`
	Altitude      int     `json:"altitude"`
	Groundspeed   int     `json:"groundspeed"`
	ModeA         string  `json:"mode_a"`
	FPAircraft    string  `json:"fp_aircraft"`
	FPSpeed       string  `json:"fp_speed"`
	FPRFL         string  `json:"fp_rfl"`
	FPDeparture   string  `json:"fp_departure"`
	FPDestination string  `json:"fp_destination"`
	FPAlternate   string  `json:"fp_alternate"`
	FPAlternate2  string  `json:"fp_alternate2"`
	FPType        string  `json:"fp_type"`
	FPPOB         int     `json:"fp_pob"`
	FPRoute       string  `json:"fp_route"`
	FPItem18      string  `json:"fp_item18"`
	FPRev         int     `json:"fp_rev"`
	FPRule        string  `json:"fp_rule"`
	FPDeptime     string  `json:"fp_deptime"`
	FPEET         string  `json:"fp_eet"`
	FPEndurance   string  `json:"fp_endurance"`
	SimType       string  `json:"sim_type"`
	ConnectedAt   string  `json:"connected_at"`
}

func (a ATC) Identity() Identity {
	return Identity{Callsign: a.Callsign, VID: a.VID, ConnectedAt: a.ConnectedAt, Software: a.Software}
}

func (p Pilot) Identity() Identity {
	return Identity{Callsign: p.Callsign, VID: p.VID, ConnectedAt: p.ConnectedAt, Software: p.Software}
}

// Valid reports whether the row is usable. The feed occasionally carries
// broken rows (garbled software field etc.); those always come with an
// empty or single-character rating, so rating length is the filter.
func (a ATC) Valid() bool { return len(a.Rating) > 1 }

func (p Pilot) Valid() bool { return len(p.Rating) > 1 }
