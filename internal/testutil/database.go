package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Asset table. amount and avg_buy cache the holdings recalculation result.
		CREATE TABLE asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			symbol VARCHAR(20) NOT NULL UNIQUE,
			coingecko_id VARCHAR(100) NOT NULL,
			color VARCHAR(7) NOT NULL,
			price FLOAT NOT NULL DEFAULT 0,
			change_24h FLOAT NOT NULL DEFAULT 0,
			amount FLOAT NOT NULL DEFAULT 0,
			avg_buy FLOAT NOT NULL DEFAULT 0,
			price_updated_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Transaction table (quoted because transaction is a reserved keyword).
		-- seq fixes the canonical replay order: oldest-first by insertion.
		CREATE TABLE "transaction" (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id VARCHAR(36) NOT NULL UNIQUE,
			asset_id VARCHAR(36) NOT NULL,
			type VARCHAR(10) NOT NULL,
			amount FLOAT NOT NULL,
			price FLOAT NOT NULL,
			total FLOAT NOT NULL,
			fee FLOAT NOT NULL DEFAULT 0,
			date DATE NOT NULL,
			note TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(asset_id) REFERENCES asset(id) ON DELETE CASCADE
		);

		-- System setting table
		CREATE TABLE system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(50) NOT NULL UNIQUE,
			value VARCHAR(1024) NOT NULL,
			updated_at DATETIME
		);

		CREATE INDEX ix_transaction_asset_id ON "transaction"(asset_id);
		CREATE INDEX ix_transaction_date ON "transaction"(date);
	`

	_, err := db.Exec(schema)
	return err
}
