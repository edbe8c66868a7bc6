package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Bounty indexes for filtering and sorting
		{"bounties", "idx_bounties_creator_id", "creator_id"},
		{"bounties", "idx_bounties_category", "category"},
		{"bounties", "idx_bounties_status", "status"},
		{"bounties", "idx_bounties_created_at", "created_at"},

		// Submission indexes for filtering and the leaderboard join
		{"submissions", "idx_submissions_bounty_id", "bounty_id"},
		{"submissions", "idx_submissions_user_id", "user_id"},
		{"submissions", "idx_submissions_status", "status"},
		{"submissions", "idx_submissions_created_at", "created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
