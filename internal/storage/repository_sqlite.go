package storage

import (
	"errors"
	"time"

	"github.com/KPWithCode/gambit-mobile/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

// InTransaction runs fn with a repository bound to a single transaction.
// Any error from fn rolls the whole unit back.
func (r *sqliteRepository) InTransaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&sqliteRepository{db: tx})
	})
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByBattleID(battleID string) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Where("battle_id = ?", battleID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Save(b).Error
}

func (r *sqliteRepository) AppendMove(m *game.BattleMove) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetRecentMoves(battleID string, limit int) ([]game.BattleMove, error) {
	var moves []game.BattleMove
	if err := r.db.Where("battle_id = ?", battleID).
		Order("id DESC").
		Limit(limit).
		Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *sqliteRepository) CreateEffect(e *game.ActiveEffect) error {
	return r.db.Create(e).Error
}

func (r *sqliteRepository) SaveEffect(e *game.ActiveEffect) error {
	return r.db.Save(e).Error
}

func (r *sqliteRepository) GetPlayerEffects(battleID, playerID string) ([]game.ActiveEffect, error) {
	var effects []game.ActiveEffect
	if err := r.db.Where("battle_id = ? AND player_id = ?", battleID, playerID).
		Find(&effects).Error; err != nil {
		return nil, err
	}
	return effects, nil
}

func (r *sqliteRepository) GetActiveEffects(battleID string) ([]game.ActiveEffect, error) {
	var effects []game.ActiveEffect
	if err := r.db.Where("battle_id = ? AND turns_left > 0", battleID).
		Find(&effects).Error; err != nil {
		return nil, err
	}
	return effects, nil
}

func (r *sqliteRepository) CreateTrap(t *game.SetTrap) error {
	return r.db.Create(t).Error
}

func (r *sqliteRepository) SaveTrap(t *game.SetTrap) error {
	return r.db.Save(t).Error
}

func (r *sqliteRepository) GetUntriggeredTraps(battleID string) ([]game.SetTrap, error) {
	var traps []game.SetTrap
	if err := r.db.Where("battle_id = ? AND triggered = ?", battleID, false).
		Find(&traps).Error; err != nil {
		return nil, err
	}
	return traps, nil
}

func (r *sqliteRepository) GetOpposingUntriggeredTraps(battleID, playerID string) ([]game.SetTrap, error) {
	var traps []game.SetTrap
	if err := r.db.Where("battle_id = ? AND player_id != ? AND triggered = ?", battleID, playerID, false).
		Find(&traps).Error; err != nil {
		return nil, err
	}
	return traps, nil
}

func (r *sqliteRepository) CreateResult(res *game.BattleResult) error {
	return r.db.Create(res).Error
}

func (r *sqliteRepository) GetUnsyncedResults() ([]game.BattleResult, error) {
	var results []game.BattleResult
	if err := r.db.Where("synced = ?", false).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sqliteRepository) MarkResultSynced(battleID string) error {
	return r.db.Model(&game.BattleResult{}).
		Where("battle_id = ?", battleID).
		Update("synced", true).Error
}

func (r *sqliteRepository) GetQueueEntryByUser(userID string) (*game.QueueEntry, error) {
	var e game.QueueEntry
	if err := r.db.Where("user_id = ?", userID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *sqliteRepository) SaveQueueEntry(e *game.QueueEntry) error {
	return r.db.Save(e).Error
}

func (r *sqliteRepository) FindWaitingOpponent(sport, excludeUserID string, now time.Time) (*game.QueueEntry, error) {
	var e game.QueueEntry
	err := r.db.Where("status = ? AND sport = ? AND user_id != ? AND expires_at > ?",
		game.QueueWaiting, sport, excludeUserID, now).
		Order("id ASC").
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ClaimQueueEntryForMatch is a guarded conditional update: the WHERE
// clause re-checks WAITING so two pairings racing for the same
// candidate cannot both win it.
func (r *sqliteRepository) ClaimQueueEntryForMatch(entryID uint, matchedWith, battleID string) (bool, error) {
	res := r.db.Model(&game.QueueEntry{}).
		Where("id = ? AND status = ?", entryID, game.QueueWaiting).
		Updates(map[string]interface{}{
			"status":       game.QueueMatched,
			"matched_with": matchedWith,
			"battle_id":    battleID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *sqliteRepository) DeleteQueueEntryByUser(userID string) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&game.QueueEntry{}).Error
}

func (r *sqliteRepository) ExpireQueueEntries(now time.Time) (int64, error) {
	res := r.db.Model(&game.QueueEntry{}).
		Where("status = ? AND expires_at < ?", game.QueueWaiting, now).
		Update("status", game.QueueExpired)
	return res.RowsAffected, res.Error
}
