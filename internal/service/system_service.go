package service

import (
	"database/sql"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/database"
	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/version"
)

// SystemService handles system-related operations like health checks and version information.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies database connectivity.
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the running application version.
func (s *SystemService) CheckVersion() string {
	return version.Version
}
