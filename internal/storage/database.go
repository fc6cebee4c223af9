package storage

import (
	"github.com/KPWithCode/gambit-mobile/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database at the given path and keeps
// the schema up to date via AutoMigrate.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.Battle{},
		&game.BattleMove{},
		&game.ActiveEffect{},
		&game.SetTrap{},
		&game.QueueEntry{},
		&game.BattleResult{},
	)
	if err != nil {
		return nil, err
	}

	// Index the pairing scan explicitly: candidates are looked up by
	// (status, sport) on every queue join.
	if execErr := db.Exec("CREATE INDEX IF NOT EXISTS idx_queue_entries_status_sport ON queue_entries(status, sport);").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
