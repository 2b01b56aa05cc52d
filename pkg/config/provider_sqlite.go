package config

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/moonorbit/pkg/migrate"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const defaultConfigName = "default"

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider opens dbPath and brings its schema up to date
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	m := migrate.NewMigrator(db, MigrationProvider(), nil)
	if err := m.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate config schema: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database. Sections
// with no row keep their defaults.
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	cfg := Default()

	configID, err := s.configID()
	if errors.Is(err, sql.ErrNoRows) {
		cfg.ApplyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadOrbit(configID, cfg); err != nil {
		return nil, fmt.Errorf("failed to load orbit config: %w", err)
	}
	if err := s.loadRender(configID, cfg); err != nil {
		return nil, fmt.Errorf("failed to load render config: %w", err)
	}
	if err := s.loadAnimation(configID, cfg); err != nil {
		return nil, fmt.Errorf("failed to load animation config: %w", err)
	}
	if err := s.loadLogging(configID, cfg); err != nil {
		return nil, fmt.Errorf("failed to load logging config: %w", err)
	}

	controllers, err := s.GetControllers()
	if err != nil {
		return nil, fmt.Errorf("failed to load controllers: %w", err)
	}
	cfg.Controllers = controllers

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *SQLiteProvider) configID() (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM configs WHERE name = ?`, defaultConfigName).Scan(&id)
	return id, err
}

func (s *SQLiteProvider) loadOrbit(configID int64, cfg *ConfigData) error {
	var sun, earth, moon sql.NullFloat64
	o := &cfg.Orbit
	err := s.db.QueryRow(`
		SELECT earth_orbit_radius, moon_orbit_radius, earth_year_days, moon_synodic_days,
		       sun_size, earth_size, moon_size
		FROM orbit_configs WHERE config_id = ?`, configID).Scan(
		&o.EarthOrbitRadius, &o.MoonOrbitRadius, &o.EarthYearDays, &o.MoonSynodicDays,
		&sun, &earth, &moon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if sun.Valid {
		o.SunSize = sun.Float64
	}
	if earth.Valid {
		o.EarthSize = earth.Float64
	}
	if moon.Valid {
		o.MoonSize = moon.Float64
	}
	return nil
}

func (s *SQLiteProvider) loadRender(configID int64, cfg *ConfigData) error {
	var cx, cy, r sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT convention, style, disk_cx, disk_cy, disk_r
		FROM render_configs WHERE config_id = ?`, configID).Scan(
		&cfg.Render.Convention, &cfg.Render.Style, &cx, &cy, &r,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if cx.Valid && cy.Valid && r.Valid {
		cfg.Render.Disk.CX = cx.Float64
		cfg.Render.Disk.CY = cy.Float64
		cfg.Render.Disk.R = r.Float64
	}
	return nil
}

func (s *SQLiteProvider) loadAnimation(configID int64, cfg *ConfigData) error {
	var interval, ttl sql.NullString
	var maxSessions sql.NullInt64
	err := s.db.QueryRow(`
		SELECT default_speed, frame_interval, session_ttl, max_sessions
		FROM animation_configs WHERE config_id = ?`, configID).Scan(
		&cfg.Animation.DefaultSpeed, &interval, &ttl, &maxSessions,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if cfg.Animation.FrameInterval, err = parseNullDuration(interval, cfg.Animation.FrameInterval); err != nil {
		return fmt.Errorf("frame_interval: %w", err)
	}
	if cfg.Animation.SessionTTL, err = parseNullDuration(ttl, cfg.Animation.SessionTTL); err != nil {
		return fmt.Errorf("session_ttl: %w", err)
	}
	if maxSessions.Valid {
		cfg.Animation.MaxSessions = int(maxSessions.Int64)
	}
	return nil
}

func (s *SQLiteProvider) loadLogging(configID int64, cfg *ConfigData) error {
	var file sql.NullString
	err := s.db.QueryRow(`SELECT debug, file FROM logging_configs WHERE config_id = ?`, configID).Scan(
		&cfg.Logging.Debug, &file,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg.Logging.File = file.String
	return nil
}

// GetControllers returns the enabled controller configurations
func (s *SQLiteProvider) GetControllers() ([]ControllerData, error) {
	rows, err := s.db.Query(`
		SELECT cc.controller_type, cc.rest_cert, cc.rest_key, cc.rest_port, cc.rest_listen_addr
		FROM controller_configs cc
		WHERE cc.config_id = (SELECT id FROM configs WHERE name = ?) AND cc.enabled = 1
		ORDER BY cc.id`, defaultConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to query controller configs: %w", err)
	}
	defer rows.Close()

	var controllers []ControllerData
	for rows.Next() {
		var controllerType string
		var restCert, restKey, restListenAddr sql.NullString
		var restPort sql.NullInt64

		if err := rows.Scan(&controllerType, &restCert, &restKey, &restPort, &restListenAddr); err != nil {
			return nil, fmt.Errorf("failed to scan controller row: %w", err)
		}

		controller := ControllerData{Type: controllerType}
		switch controllerType {
		case "rest", "restserver":
			controller.RESTServer = &RESTServerData{
				Cert:       restCert.String,
				Key:        restKey.String,
				Port:       int(restPort.Int64),
				ListenAddr: restListenAddr.String,
			}
		}
		controllers = append(controllers, controller)
	}
	return controllers, rows.Err()
}

// IsReadOnly returns false; SQLite configs can be rewritten with SaveConfig
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveConfig replaces the stored configuration with configData
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	if err := configData.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	configID, err := s.getOrCreateConfigID(tx)
	if err != nil {
		return fmt.Errorf("failed to insert config: %w", err)
	}

	if err := s.clearExistingConfig(tx, configID); err != nil {
		return fmt.Errorf("failed to clear existing config: %w", err)
	}

	o := configData.Orbit
	if _, err := tx.Exec(`
		INSERT INTO orbit_configs (config_id, earth_orbit_radius, moon_orbit_radius,
			earth_year_days, moon_synodic_days, sun_size, earth_size, moon_size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		configID, o.EarthOrbitRadius, o.MoonOrbitRadius, o.EarthYearDays, o.MoonSynodicDays,
		nullFloat64(o.SunSize), nullFloat64(o.EarthSize), nullFloat64(o.MoonSize),
	); err != nil {
		return fmt.Errorf("failed to insert orbit config: %w", err)
	}

	r := configData.Render
	if _, err := tx.Exec(`
		INSERT INTO render_configs (config_id, convention, style, disk_cx, disk_cy, disk_r)
		VALUES (?, ?, ?, ?, ?, ?)`,
		configID, r.Convention, r.Style, r.Disk.CX, r.Disk.CY, r.Disk.R,
	); err != nil {
		return fmt.Errorf("failed to insert render config: %w", err)
	}

	a := configData.Animation
	if _, err := tx.Exec(`
		INSERT INTO animation_configs (config_id, default_speed, frame_interval, session_ttl, max_sessions)
		VALUES (?, ?, ?, ?, ?)`,
		configID, a.DefaultSpeed, nullDuration(a.FrameInterval), nullDuration(a.SessionTTL), a.MaxSessions,
	); err != nil {
		return fmt.Errorf("failed to insert animation config: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO logging_configs (config_id, debug, file) VALUES (?, ?, ?)`,
		configID, configData.Logging.Debug, nullString(configData.Logging.File),
	); err != nil {
		return fmt.Errorf("failed to insert logging config: %w", err)
	}

	for _, controller := range configData.Controllers {
		if err := s.insertController(tx, configID, &controller); err != nil {
			return fmt.Errorf("failed to insert controller %s: %w", controller.Type, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteProvider) getOrCreateConfigID(tx *sql.Tx) (int64, error) {
	if _, err := tx.Exec(`
		INSERT INTO configs (name) VALUES (?)
		ON CONFLICT(name) DO UPDATE SET updated_at = CURRENT_TIMESTAMP`, defaultConfigName); err != nil {
		return 0, err
	}
	var id int64
	err := tx.QueryRow(`SELECT id FROM configs WHERE name = ?`, defaultConfigName).Scan(&id)
	return id, err
}

func (s *SQLiteProvider) clearExistingConfig(tx *sql.Tx, configID int64) error {
	queries := []string{
		"DELETE FROM orbit_configs WHERE config_id = ?",
		"DELETE FROM render_configs WHERE config_id = ?",
		"DELETE FROM animation_configs WHERE config_id = ?",
		"DELETE FROM logging_configs WHERE config_id = ?",
		"DELETE FROM controller_configs WHERE config_id = ?",
	}

	for _, query := range queries {
		if _, err := tx.Exec(query, configID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteProvider) insertController(tx *sql.Tx, configID int64, controller *ControllerData) error {
	var cert, key, addr sql.NullString
	var port sql.NullInt64
	if rc := controller.RESTServer; rc != nil {
		cert, key, addr = nullString(rc.Cert), nullString(rc.Key), nullString(rc.ListenAddr)
		if rc.Port != 0 {
			port = sql.NullInt64{Int64: int64(rc.Port), Valid: true}
		}
	}

	_, err := tx.Exec(`
		INSERT INTO controller_configs (config_id, controller_type, enabled,
			rest_cert, rest_key, rest_port, rest_listen_addr)
		VALUES (?, ?, 1, ?, ?, ?, ?)`,
		configID, controller.Type, cert, key, port, addr,
	)
	return err
}

// Helper functions for handling nullable fields
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat64(f float64) sql.NullFloat64 {
	if f == 0 {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullDuration(d time.Duration) sql.NullString {
	if d == 0 {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullDuration(s sql.NullString, fallback time.Duration) (time.Duration, error) {
	if !s.Valid || s.String == "" {
		return fallback, nil
	}
	return time.ParseDuration(s.String)
}

// MigrationProvider returns the embedded config schema migrations
func MigrationProvider() migrate.MigrationProvider {
	return migrate.NewFSProvider(migrationFS, "migrations", "")
}
