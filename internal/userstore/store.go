// Copyright 2025 Farmer Super App Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package userstore persists farmer profiles keyed by phone number. It
// supports a single-file JSON store for simple deployments and SQLite for
// anything concurrent. Both backends also remember the last active phone so
// the app can restore the previous session.
package userstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const (
	StorageTypeFile   = "file"
	StorageTypeSQLite = "sqlite"
)

var (
	// ErrExists is returned when registering a phone number that already
	// has a profile.
	ErrExists = errors.New("profile already exists")
	// ErrNotFound is returned when no profile matches the phone number.
	ErrNotFound = errors.New("profile not found")
	// ErrBadCredentials is returned on a password mismatch.
	ErrBadCredentials = errors.New("invalid phone number or password")
)

// Profile is a farmer's account and farm details. Soil readings are
// pointers: nil means the farmer has not entered a soil health card yet.
type Profile struct {
	Phone    string  `json:"phone"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Password string  `json:"password"`
	Language string  `json:"language"`
	Crop     string  `json:"crop,omitempty"`
	LandSize float64 `json:"land_size,omitempty"`
	SoilN    *int    `json:"soil_n,omitempty"`
	SoilP    *int    `json:"soil_p,omitempty"`
	SoilK    *int    `json:"soil_k,omitempty"`
}

// Config selects the storage backend.
type Config struct {
	StorageType string `json:"storage_type"` // StorageTypeFile or StorageTypeSQLite
	FilePath    string `json:"file_path"`    // Path for file storage
	DBPath      string `json:"db_path"`      // Path for SQLite database
}

// Store persists profiles to the configured backend.
type Store struct {
	config Config
	logger *zap.Logger
	db     *sql.DB
	mu     sync.RWMutex
}

// fileLayout is the on-disk JSON shape for file storage: profiles keyed by
// phone plus a meta block.
type fileLayout struct {
	Users map[string]Profile `json:"users"`
	Meta  struct {
		LastActivePhone string `json:"last_active_phone,omitempty"`
	} `json:"meta"`
}

// New creates a store for the configured backend.
func New(config Config, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{config: config, logger: logger}

	switch config.StorageType {
	case StorageTypeFile:
		if err := s.initFileStorage(); err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
	case StorageTypeSQLite:
		if err := s.initSQLiteStorage(); err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite storage: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.StorageType)
	}

	return s, nil
}

func (s *Store) initFileStorage() error {
	dir := filepath.Dir(s.config.FilePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create user store directory: %w", err)
	}
	if _, err := os.Stat(s.config.FilePath); os.IsNotExist(err) {
		layout := fileLayout{Users: map[string]Profile{}}
		if err := s.writeFile(layout); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) initSQLiteStorage() error {
	dir := filepath.Dir(s.config.DBPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create user database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	createSQL := `
		CREATE TABLE IF NOT EXISTS users (
			phone TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			city TEXT,
			password TEXT NOT NULL,
			language TEXT,
			crop TEXT,
			land_size REAL,
			soil_n INTEGER,
			soil_p INTEGER,
			soil_k INTEGER
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`
	if _, err := db.Exec(createSQL); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create user tables: %w", err)
	}

	s.db = db
	return nil
}

// readFile loads the whole JSON layout. A corrupt file is treated as empty
// rather than blocking every login.
func (s *Store) readFile() fileLayout {
	layout := fileLayout{Users: map[string]Profile{}}
	data, err := os.ReadFile(s.config.FilePath)
	if err != nil {
		return layout
	}
	if err := json.Unmarshal(data, &layout); err != nil {
		s.logger.Warn("User store file corrupt, starting empty",
			zap.String("path", s.config.FilePath),
			zap.Error(err))
		return fileLayout{Users: map[string]Profile{}}
	}
	if layout.Users == nil {
		layout.Users = map[string]Profile{}
	}
	return layout
}

func (s *Store) writeFile(layout fileLayout) error {
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user store: %w", err)
	}
	if err := os.WriteFile(s.config.FilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	return nil
}

// Register creates a new profile. ErrExists if the phone is taken.
func (s *Store) Register(profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.config.StorageType {
	case StorageTypeFile:
		layout := s.readFile()
		if _, ok := layout.Users[profile.Phone]; ok {
			return ErrExists
		}
		layout.Users[profile.Phone] = profile
		if err := s.writeFile(layout); err != nil {
			return err
		}
	case StorageTypeSQLite:
		var exists int
		err := s.db.QueryRow(`SELECT COUNT(*) FROM users WHERE phone = ?`, profile.Phone).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check existing profile: %w", err)
		}
		if exists > 0 {
			return ErrExists
		}
		_, err = s.db.Exec(
			`INSERT INTO users (phone, name, city, password, language, crop, land_size, soil_n, soil_p, soil_k)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			profile.Phone, profile.Name, profile.City, profile.Password, profile.Language,
			profile.Crop, profile.LandSize, profile.SoilN, profile.SoilP, profile.SoilK)
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
	}

	s.logger.Info("Registered farmer profile",
		zap.String("phone", profile.Phone),
		zap.String("city", profile.City))
	return nil
}

// Get returns the profile for a phone number.
func (s *Store) Get(phone string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(phone)
}

func (s *Store) get(phone string) (Profile, error) {
	switch s.config.StorageType {
	case StorageTypeFile:
		layout := s.readFile()
		profile, ok := layout.Users[phone]
		if !ok {
			return Profile{}, ErrNotFound
		}
		return profile, nil
	case StorageTypeSQLite:
		var p Profile
		var city, language, crop sql.NullString
		var landSize sql.NullFloat64
		var soilN, soilP, soilK sql.NullInt64
		err := s.db.QueryRow(
			`SELECT phone, name, city, password, language, crop, land_size, soil_n, soil_p, soil_k
			 FROM users WHERE phone = ?`, phone).
			Scan(&p.Phone, &p.Name, &city, &p.Password, &language, &crop, &landSize, &soilN, &soilP, &soilK)
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		if err != nil {
			return Profile{}, fmt.Errorf("failed to query profile: %w", err)
		}
		p.City = city.String
		p.Language = language.String
		p.Crop = crop.String
		p.LandSize = landSize.Float64
		if soilN.Valid {
			n := int(soilN.Int64)
			p.SoilN = &n
		}
		if soilP.Valid {
			v := int(soilP.Int64)
			p.SoilP = &v
		}
		if soilK.Valid {
			k := int(soilK.Int64)
			p.SoilK = &k
		}
		return p, nil
	default:
		return Profile{}, fmt.Errorf("unsupported storage type: %s", s.config.StorageType)
	}
}

// Authenticate checks credentials and marks the phone as last active on
// success. ErrNotFound for unknown phones, ErrBadCredentials on mismatch.
func (s *Store) Authenticate(phone, password string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.get(phone)
	if err != nil {
		return Profile{}, err
	}
	if profile.Password != password {
		return Profile{}, ErrBadCredentials
	}
	if err := s.setLastActive(phone); err != nil {
		s.logger.Warn("Failed to record last active phone", zap.Error(err))
	}
	return profile, nil
}

// Update replaces the stored profile for its phone number.
func (s *Store) Update(profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.config.StorageType {
	case StorageTypeFile:
		layout := s.readFile()
		if _, ok := layout.Users[profile.Phone]; !ok {
			return ErrNotFound
		}
		layout.Users[profile.Phone] = profile
		return s.writeFile(layout)
	case StorageTypeSQLite:
		res, err := s.db.Exec(
			`UPDATE users SET name = ?, city = ?, password = ?, language = ?, crop = ?,
			 land_size = ?, soil_n = ?, soil_p = ?, soil_k = ? WHERE phone = ?`,
			profile.Name, profile.City, profile.Password, profile.Language, profile.Crop,
			profile.LandSize, profile.SoilN, profile.SoilP, profile.SoilK, profile.Phone)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check update result: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	default:
		return fmt.Errorf("unsupported storage type: %s", s.config.StorageType)
	}
}

// SetLastActive records which phone logged in most recently.
func (s *Store) SetLastActive(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLastActive(phone)
}

func (s *Store) setLastActive(phone string) error {
	switch s.config.StorageType {
	case StorageTypeFile:
		layout := s.readFile()
		layout.Meta.LastActivePhone = phone
		return s.writeFile(layout)
	case StorageTypeSQLite:
		_, err := s.db.Exec(
			`INSERT INTO meta (key, value) VALUES ('last_active_phone', ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, phone)
		if err != nil {
			return fmt.Errorf("failed to store last active phone: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported storage type: %s", s.config.StorageType)
	}
}

// LastActive returns the most recently active phone, or "" when none.
func (s *Store) LastActive() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.config.StorageType {
	case StorageTypeFile:
		return s.readFile().Meta.LastActivePhone
	case StorageTypeSQLite:
		var phone string
		err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_active_phone'`).Scan(&phone)
		if err != nil {
			return ""
		}
		return phone
	default:
		return ""
	}
}

// Close releases any open resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
