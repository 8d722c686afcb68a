package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Config holds Postgres connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Store is the session store: one row per session, open or closed, in the
// atcs and pilots tables.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

func Open(cfg Config, log zerolog.Logger) (*Store, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	s := &Store{
		db:  sqlDB,
		log: log.With().Str("component", "db").Logger(),
	}

	if err = s.createTables(); err != nil {
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return s, nil
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS atcs (
			id BIGSERIAL PRIMARY KEY,
			callsign VARCHAR(255) NOT NULL,
			vid VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL,
			rating VARCHAR(20) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			server VARCHAR(255) NOT NULL,
			protocol VARCHAR(20) NOT NULL,
			software VARCHAR(255) NOT NULL,
			frequency VARCHAR(20) NOT NULL,
			radar_range INTEGER NOT NULL,
			atis TEXT,
			atis_time VARCHAR(20),
			online BOOLEAN NOT NULL DEFAULT true,
			connected_at TIMESTAMP WITH TIME ZONE NOT NULL,
			disconnected_at TIMESTAMP WITH TIME ZONE,
			last_tracked_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pilots (
			id BIGSERIAL PRIMARY KEY,
			callsign VARCHAR(255) NOT NULL,
			vid VARCHAR(20) NOT NULL,
			status VARCHAR(20) NOT NULL,
			rating VARCHAR(20) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			server VARCHAR(255) NOT NULL,
			protocol VARCHAR(20) NOT NULL,
			software VARCHAR(255) NOT NULL,
			heading INTEGER NOT NULL,
			on_ground BOOLEAN NOT NULL,
			altitude INTEGER NOT NULL,
			groundspeed INTEGER NOT NULL,
			mode_a VARCHAR(10),
			fp_aircraft VARCHAR(255),
			fp_speed VARCHAR(10),
			fp_rfl VARCHAR(10),
			fp_departure VARCHAR(4),
			fp_destination VARCHAR(4),
			fp_alternate VARCHAR(4),
			fp_alternate2 VARCHAR(4),
			fp_type VARCHAR(2),
			fp_pob INTEGER,
			fp_route TEXT,
			fp_item18 TEXT,
			fp_rev INTEGER,
			fp_rule VARCHAR(2),
			fp_deptime VARCHAR(4),
			fp_eet VARCHAR(4),
			fp_endurance VARCHAR(4),
			sim_type VARCHAR(255),
			online BOOLEAN NOT NULL DEFAULT true,
			connected_at TIMESTAMP WITH TIME ZONE NOT NULL,
			disconnected_at TIMESTAMP WITH TIME ZONE,
			last_tracked_at TIMESTAMP WITH TIME ZONE NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_atcs_online_callsign ON atcs(callsign) WHERE online`,
		`CREATE INDEX IF NOT EXISTS idx_pilots_online_callsign ON pilots(callsign) WHERE online`,
		`CREATE INDEX IF NOT EXISTS idx_atcs_vid ON atcs(vid)`,
		`CREATE INDEX IF NOT EXISTS idx_pilots_vid ON pilots(vid)`,
	}

	for _, query := range queries {
		_, err := s.db.Exec(query)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
