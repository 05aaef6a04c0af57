package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// CreateSchema creates the configuration tables if they do not exist. Used
// by config-convert when building a database from a YAML source.
func (s *SQLiteProvider) CreateSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS server_config (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			listen_addr TEXT NOT NULL DEFAULT '',
			port INTEGER NOT NULL,
			read_timeout INTEGER NOT NULL DEFAULT 0,
			write_timeout INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS defaults (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			preset TEXT NOT NULL DEFAULT '',
			recess_effectiveness REAL NOT NULL DEFAULT 0,
			strict_areas INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS presets (
			name TEXT PRIMARY KEY,
			glass_u1 REAL NOT NULL,
			total_u1 REAL NOT NULL,
			glass_u2 REAL NOT NULL,
			total_u2 REAL NOT NULL,
			unit TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SaveConfig writes a complete configuration into the database, replacing
// whatever is there.
func (s *SQLiteProvider) SaveConfig(config *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO server_config (id, listen_addr, port, read_timeout, write_timeout)
		VALUES (1, ?, ?, ?, ?)`,
		config.Server.ListenAddr, config.Server.Port, config.Server.ReadTimeout, config.Server.WriteTimeout); err != nil {
		return fmt.Errorf("failed to save server config: %w", err)
	}

	strictAreas := 0
	if config.Defaults.StrictAreas {
		strictAreas = 1
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO defaults (id, preset, recess_effectiveness, strict_areas)
		VALUES (1, ?, ?, ?)`,
		config.Defaults.Preset, config.Defaults.RecessEffectiveness, strictAreas); err != nil {
		return fmt.Errorf("failed to save defaults: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM presets`); err != nil {
		return fmt.Errorf("failed to clear presets: %w", err)
	}
	for _, p := range config.Presets {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO presets (name, glass_u1, total_u1, glass_u2, total_u2, unit)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.Name, p.GlassU1, p.TotalU1, p.GlassU2, p.TotalU2, p.Unit); err != nil {
			return fmt.Errorf("failed to save preset %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

// LoadConfig loads the complete configuration from the SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	server, err := s.GetServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	defaults, err := s.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	presets, err := s.GetPresets()
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	return &ConfigData{
		Server:   *server,
		Defaults: *defaults,
		Presets:  presets,
	}, nil
}

// GetServerConfig returns the server section
func (s *SQLiteProvider) GetServerConfig() (*ServerData, error) {
	server := &ServerData{}
	err := s.db.QueryRow(`SELECT listen_addr, port, read_timeout, write_timeout FROM server_config WHERE id = 1`).
		Scan(&server.ListenAddr, &server.Port, &server.ReadTimeout, &server.WriteTimeout)
	if err == sql.ErrNoRows {
		return &ServerData{}, nil
	}
	if err != nil {
		return nil, err
	}
	return server, nil
}

// GetDefaults returns the estimation defaults section
func (s *SQLiteProvider) GetDefaults() (*DefaultsData, error) {
	defaults := &DefaultsData{}
	var strictAreas int
	err := s.db.QueryRow(`SELECT preset, recess_effectiveness, strict_areas FROM defaults WHERE id = 1`).
		Scan(&defaults.Preset, &defaults.RecessEffectiveness, &strictAreas)
	if err == sql.ErrNoRows {
		return &DefaultsData{}, nil
	}
	if err != nil {
		return nil, err
	}
	defaults.StrictAreas = strictAreas != 0
	return defaults, nil
}

// GetPresets returns the operator-configured calibration presets
func (s *SQLiteProvider) GetPresets() ([]PresetData, error) {
	rows, err := s.db.Query(`SELECT name, glass_u1, total_u1, glass_u2, total_u2, unit FROM presets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []PresetData
	for rows.Next() {
		var p PresetData
		if err := rows.Scan(&p.Name, &p.GlassU1, &p.TotalU1, &p.GlassU2, &p.TotalU2, &p.Unit); err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// IsReadOnly returns false; SQLite configurations support writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
