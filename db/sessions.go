package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ivaohu/ivao-tracker/models"
	"github.com/ivaohu/ivao-tracker/tracker"
)

// OpenATCs returns the id and identity of every open controller session.
func (s *Store) OpenATCs() ([]models.OpenSession, error) {
	return s.openSessions("atcs")
}

// OpenPilots returns the id and identity of every open pilot session.
func (s *Store) OpenPilots() ([]models.OpenSession, error) {
	return s.openSessions("pilots")
}

func (s *Store) openSessions(table string) ([]models.OpenSession, error) {
	rows, err := s.db.Query(fmt.Sprintf(
		`SELECT id, callsign, vid, connected_at, software FROM %s WHERE online = TRUE ORDER BY callsign`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.OpenSession
	for rows.Next() {
		var (
			id                      int64
			callsign, vid, software string
			connectedAt             time.Time
		)
		if err := rows.Scan(&id, &callsign, &vid, &connectedAt, &software); err != nil {
			return nil, err
		}
		sessions = append(sessions, models.OpenSession{
			ID: id,
			Identity: models.Identity{
				Callsign:    callsign,
				VID:         vid,
				ConnectedAt: models.FormatTime(connectedAt),
				Software:    software,
			},
		})
	}
	return sessions, rows.Err()
}

// Commit applies one cycle's mutations inside a single transaction: new
// sessions are inserted online, matched sessions get their live fields
// refreshed, and everything that fell out of the feed is closed. Any
// failure rolls the whole cycle back.
func (s *Store) Commit(m tracker.Mutations) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range m.ATCs.Created {
		if err := insertATC(tx, a); err != nil {
			return fmt.Errorf("inserting atc %s: %w", a.Callsign, err)
		}
	}
	for _, u := range m.ATCs.Updated {
		if err := updateATC(tx, u.ID, u.Feed); err != nil {
			return fmt.Errorf("updating atc %s: %w", u.Feed.Callsign, err)
		}
	}
	for _, c := range m.ATCs.Closed {
		if err := closeSession(tx, "atcs", c.ID); err != nil {
			return fmt.Errorf("closing atc %s: %w", c.Identity.Callsign, err)
		}
	}

	for _, p := range m.Pilots.Created {
		if err := insertPilot(tx, p); err != nil {
			return fmt.Errorf("inserting pilot %s: %w", p.Callsign, err)
		}
	}
	for _, u := range m.Pilots.Updated {
		if err := updatePilot(tx, u.ID, u.Feed); err != nil {
			return fmt.Errorf("updating pilot %s: %w", u.Feed.Callsign, err)
		}
	}
	for _, c := range m.Pilots.Closed {
		if err := closeSession(tx, "pilots", c.ID); err != nil {
			return fmt.Errorf("closing pilot %s: %w", c.Identity.Callsign, err)
		}
	}

	return tx.Commit()
}

func insertATC(tx *sql.Tx, a models.ATC) error {
	connectedAt, err := models.ParseTime(a.ConnectedAt)
	if err != nil {
		return fmt.Errorf("bad connected_at %q: %w", a.ConnectedAt, err)
	}
	_, err = tx.Exec(`
		INSERT INTO atcs (
			callsign, vid, status, rating, latitude, longitude,
			server, protocol, software, frequency, radar_range,
			atis, atis_time, online, connected_at, last_tracked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE, $14, NOW())
	`, a.Callsign, a.VID, a.Status, a.Rating, a.Latitude, a.Longitude,
		a.Server, a.Protocol, a.Software, a.Frequency, a.RadarRange,
		a.Atis, a.AtisTime, connectedAt)
	return err
}

func updateATC(tx *sql.Tx, id int64, a models.ATC) error {
	_, err := tx.Exec(`
		UPDATE atcs
		SET latitude = $1, longitude = $2, frequency = $3, radar_range = $4,
			atis = $5, atis_time = $6, last_tracked_at = NOW()
		WHERE id = $7
	`, a.Latitude, a.Longitude, a.Frequency, a.RadarRange,
		a.Atis, a.AtisTime, id)
	return err
}

func insertPilot(tx *sql.Tx, p models.Pilot) error {
	connectedAt, err := models.ParseTime(p.ConnectedAt)
	if err != nil {
		return fmt.Errorf("bad connected_at %q: %w", p.ConnectedAt, err)
	}
	_, err = tx.Exec(`
		INSERT INTO pilots (
			callsign, vid, status, rating, latitude, longitude,
			server, protocol, software, heading, on_ground, altitude,
			groundspeed, mode_a, fp_aircraft, fp_speed, fp_rfl,
			fp_departure, fp_destination, fp_alternate, fp_alternate2,
			fp_type, fp_pob, fp_route, fp_item18, fp_rev, fp_rule,
			fp_deptime, fp_eet, fp_endurance, sim_type, online,
			connected_at, last_tracked_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
			$25, $26, $27, $28, $29, $30, $31, TRUE, $32, NOW())
	`, p.Callsign, p.VID, p.Status, p.Rating, p.Latitude, p.Longitude,
		p.Server, p.Protocol, p.Software, p.Heading, p.OnGround, p.Altitude,
		p.Groundspeed, p.ModeA, p.FPAircraft, p.FPSpeed, p.FPRFL,
		p.FPDeparture, p.FPDestination, p.FPAlternate, p.FPAlternate2,
		p.FPType, p.FPPOB, p.FPRoute, p.FPItem18, p.FPRev, p.FPRule,
		p.FPDeptime, p.FPEET, p.FPEndurance, p.SimType, connectedAt)
	return err
}

func updatePilot(tx *sql.Tx, id int64, p models.Pilot) error {
	_, err := tx.Exec(`
		UPDATE pilots
		SET latitude = $1, longitude = $2, heading = $3, on_ground = $4,
			altitude = $5, groundspeed = $6, mode_a = $7, fp_aircraft = $8,
			fp_speed = $9, fp_rfl = $10, fp_departure = $11,
			fp_destination = $12, fp_alternate = $13, fp_alternate2 = $14,
			fp_type = $15, fp_pob = $16, fp_route = $17, fp_item18 = $18,
			fp_rev = $19, fp_rule = $20, fp_deptime = $21, fp_eet = $22,
			fp_endurance = $23, last_tracked_at = NOW()
		WHERE id = $24
	`, p.Latitude, p.Longitude, p.Heading, p.OnGround,
		p.Altitude, p.Groundspeed, p.ModeA, p.FPAircraft,
		p.FPSpeed, p.FPRFL, p.FPDeparture,
		p.FPDestination, p.FPAlternate, p.FPAlternate2,
		p.FPType, p.FPPOB, p.FPRoute, p.FPItem18,
		p.FPRev, p.FPRule, p.FPDeptime, p.FPEET,
		p.FPEndurance, id)
	return err
}

func closeSession(tx *sql.Tx, table string, id int64) error {
	_, err := tx.Exec(fmt.Sprintf(
		`UPDATE %s SET online = FALSE, disconnected_at = NOW() WHERE id = $1`, table), id)
	return err
}

// OnlineATCs returns the full rows of every open controller session, for
// the status API.
func (s *Store) OnlineATCs() ([]models.ATCSession, error) {
	rows, err := s.db.Query(`
		SELECT id, callsign, vid, status, rating, latitude, longitude,
			server, protocol, software, frequency, radar_range, atis,
			atis_time, online, connected_at, disconnected_at, last_tracked_at
		FROM atcs WHERE online = TRUE ORDER BY callsign
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.ATCSession
	for rows.Next() {
		var a models.ATCSession
		var atis, atisTime sql.NullString
		if err := rows.Scan(&a.ID, &a.Callsign, &a.VID, &a.Status, &a.Rating,
			&a.Latitude, &a.Longitude, &a.Server, &a.Protocol, &a.Software,
			&a.Frequency, &a.RadarRange, &atis, &atisTime, &a.Online,
			&a.ConnectedAt, &a.DisconnectedAt, &a.LastTrackedAt); err != nil {
			return nil, err
		}
		a.Atis = atis.String
		a.AtisTime = atisTime.String
		sessions = append(sessions, a)
	}
	return sessions, rows.Err()
}

// OnlinePilots returns the full rows of every open pilot session.
func (s *Store) OnlinePilots() ([]models.PilotSession, error) {
	rows, err := s.db.Query(`
		SELECT id, callsign, vid, status, rating, latitude, longitude,
			server, protocol, software, heading, on_ground, altitude,
			groundspeed, mode_a, fp_aircraft, fp_speed, fp_rfl,
			fp_departure, fp_destination, fp_alternate, fp_alternate2,
			fp_type, fp_pob, fp_route, fp_item18, fp_rev, fp_rule,
			fp_deptime, fp_eet, fp_endurance, sim_type, online,
			connected_at, disconnected_at, last_tracked_at
		FROM pilots WHERE online = TRUE ORDER BY callsign
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.PilotSession
	for rows.Next() {
		var p models.PilotSession
		var modeA, fpAircraft, fpSpeed, fpRFL, fpDeparture, fpDestination,
			fpAlternate, fpAlternate2, fpType, fpRoute, fpItem18, fpRule,
			fpDeptime, fpEET, fpEndurance, simType sql.NullString
		var fpPOB, fpRev sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Callsign, &p.VID, &p.Status, &p.Rating,
			&p.Latitude, &p.Longitude, &p.Server, &p.Protocol, &p.Software,
			&p.Heading, &p.OnGround, &p.Altitude, &p.Groundspeed, &modeA,
			&fpAircraft, &fpSpeed, &fpRFL, &fpDeparture, &fpDestination,
			&fpAlternate, &fpAlternate2, &fpType, &fpPOB, &fpRoute,
			&fpItem18, &fpRev, &fpRule, &fpDeptime, &fpEET, &fpEndurance,
			&simType, &p.Online, &p.ConnectedAt, &p.DisconnectedAt,
			&p.LastTrackedAt); err != nil {
			return nil, err
		}
		p.ModeA = modeA.String
		p.FPAircraft = fpAircraft.String
		p.FPSpeed = fpSpeed.String
		p.FPRFL = fpRFL.String
		p.FPDeparture = fpDeparture.String
		p.FPDestination = fpDestination.String
		p.FPAlternate = fpAlternate.String
		p.FPAlternate2 = fpAlternate2.String
		p.FPType = fpType.String
		p.FPPOB = int(fpPOB.Int64)
		p.FPRoute = fpRoute.String
		p.FPItem18 = fpItem18.String
		p.FPRev = int(fpRev.Int64)
		p.FPRule = fpRule.String
		p.FPDeptime = fpDeptime.String
		p.FPEET = fpEET.String
		p.FPEndurance = fpEndurance.String
		p.SimType = simType.String
		sessions = append(sessions, p)
	}
	return sessions, rows.Err()
}
