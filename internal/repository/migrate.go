package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates the schema for every repository in dependency order.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&categoryModel{},
		&donationModel{},
		&requestModel{},
		&matchModel{},
		&feedbackModel{},
		&notificationModel{},
	); err != nil {
		return err
	}

	// One active match per donation, enforced structurally. A canceled match
	// reopens the donation, so the index only covers scheduled rows.
	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_one_scheduled_match_per_donation
ON matches (donation_id) WHERE status = 'scheduled'
`).Error
}

// lockForUpdate adds a row lock on dialects that support it. SQLite has no
// row-level locks; its single-writer model covers the dev/test case.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
