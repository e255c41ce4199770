package db

import (
	"database/sql"

	"github.com/apex/log"
)

// CreateTables sets up the reports table if it is missing.
func CreateTables(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS reports (
	  id VARCHAR(36) NOT NULL PRIMARY KEY,
	  title VARCHAR(255) NOT NULL,
	  description TEXT NOT NULL,
	  category ENUM('pothole', 'garbage', 'other') NOT NULL,
	  status ENUM('open', 'in_progress', 'resolved') NOT NULL DEFAULT 'open',
	  auto_categorized BOOLEAN NOT NULL DEFAULT FALSE,
	  image_url VARCHAR(1024) NOT NULL DEFAULT '',
	  lat DOUBLE NOT NULL,
	  lng DOUBLE NOT NULL,
	  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	  INDEX created_at_idx (created_at),
	  INDEX lat_lng_idx (lat, lng)
	)`)
	if err != nil {
		log.Errorf("Failed to create reports table: %v", err)
		return err
	}
	return nil
}
