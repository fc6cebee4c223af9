package game

import (
	"time"

	"gorm.io/gorm"
)

// Battle is the authoritative state of one match between two players.
// The deck snapshots are frozen at creation time so later collection
// changes never affect a battle already in progress. Battles are never
// deleted; finished battles remain for audit and result syncing.
type Battle struct {
	gorm.Model
	BattleID        string `json:"battle_id" gorm:"uniqueIndex"`
	Player1ID       string `json:"player1_id" gorm:"index"`
	Player2ID       string `json:"player2_id"`
	Player1Username string `json:"player1_username"`
	Player2Username string `json:"player2_username"`
	Player1Score    int    `json:"player1_score"`
	Player2Score    int    `json:"player2_score"`
	Player1Deck     Deck   `json:"player1_deck" gorm:"serializer:json"`
	Player2Deck     Deck   `json:"player2_deck" gorm:"serializer:json"`
	Quarter         int    `json:"quarter"`
	CurrentTurn     string `json:"current_turn"`
	Sport           string `json:"sport"`
	Status          string `json:"status" gorm:"index"`
}

// OpponentOf returns the other player's id.
func (b *Battle) OpponentOf(playerID string) string {
	if playerID == b.Player1ID {
		return b.Player2ID
	}
	return b.Player1ID
}

// UsernameOf returns the display name for the given player id.
func (b *Battle) UsernameOf(playerID string) string {
	if playerID == b.Player1ID {
		return b.Player1Username
	}
	return b.Player2Username
}

// DeckOf returns the frozen deck snapshot for the given player id.
func (b *Battle) DeckOf(playerID string) Deck {
	if playerID == b.Player1ID {
		return b.Player1Deck
	}
	return b.Player2Deck
}

// Deck is an ordered list of card snapshots, stored as a JSON column.
type Deck []Card

// FindCard returns the card with the given id, or nil when the deck
// does not contain it.
func (d Deck) FindCard(cardID string) *Card {
	for i := range d {
		if d[i].ID == cardID {
			return &d[i]
		}
	}
	return nil
}

// Card is one entry of a deck snapshot. Stats are in the range [0,100]
// and drive the probability rolls in the engine.
type Card struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Position   string `json:"position"`
	Offense    int    `json:"offense"`
	Defense    int    `json:"defense"`
	Speed      int    `json:"speed"`
	ThreePoint int    `json:"three_point"`
}

// BattleMove is one append-only log entry. Rows are never mutated after
// insert; readers take the most recent N in reverse insertion order.
type BattleMove struct {
	gorm.Model
	BattleID       string `json:"battle_id" gorm:"index"`
	Quarter        int    `json:"turn"`
	PlayerID       string `json:"player_id"`
	PlayerUsername string `json:"player_username"`
	Action         string `json:"action"`
	CardID         string `json:"card_id"`
	CardName       string `json:"card_name"`
	Success        bool   `json:"success"`
	PointsScored   int    `json:"points_scored"`
	Description    string `json:"description"`
}

// StatBoosts is the per-stat bonus payload a spell grants its caster.
type StatBoosts struct {
	Offense    int `json:"offense,omitempty"`
	Defense    int `json:"defense,omitempty"`
	Speed      int `json:"speed,omitempty"`
	ThreePoint int `json:"three_point,omitempty"`
}

// ActiveEffect is a temporary stat modifier attached to a player for a
// bounded number of remaining turns. The only mutation after insert is
// the TurnsLeft decrement; a row at zero stays in the table but is
// filtered out of read views and boost sums.
type ActiveEffect struct {
	gorm.Model
	BattleID       string     `json:"battle_id" gorm:"index"`
	EffectID       string     `json:"effect_id"`
	CardID         string     `json:"card_id"`
	CardName       string     `json:"card_name"`
	PlayerID       string     `json:"player_id"`
	TargetPlayer   string     `json:"target_player"`
	StatBoosts     StatBoosts `json:"stat_boosts" gorm:"serializer:json"`
	Duration       string     `json:"duration"`
	TurnsLeft      int        `json:"turns_left"`
	CreatedQuarter int        `json:"created_turn"`
}

// StatReduction is the stat penalty a trap applies when it fires.
type StatReduction struct {
	Offense int `json:"offense,omitempty"`
	Defense int `json:"defense,omitempty"`
	Speed   int `json:"speed,omitempty"`
}

// TrapEffect is the payload applied when a trap triggers.
type TrapEffect struct {
	StatReduction StatReduction `json:"stat_reduction,omitempty"`
	InstantPoints int           `json:"instant_points,omitempty"`
}

// SetTrap is a player-armed interceptor. Triggered flips false→true at
// most once; a triggered trap is never considered again and never
// deleted.
type SetTrap struct {
	gorm.Model
	BattleID   string     `json:"battle_id" gorm:"index"`
	TrapID     string     `json:"trap_id"`
	CardID     string     `json:"card_id"`
	CardName   string     `json:"card_name"`
	PlayerID   string     `json:"player_id"`
	Trigger    string     `json:"trigger"`
	Effect     TrapEffect `json:"effect" gorm:"serializer:json"`
	SetQuarter int        `json:"set_on_turn"`
	Triggered  bool       `json:"triggered"`
}

// QueueEntry is one player's slot in the matchmaking pool. A player has
// at most one entry at a time; a rejoin overwrites in place instead of
// duplicating.
type QueueEntry struct {
	gorm.Model
	UserID      string    `json:"user_id" gorm:"uniqueIndex"`
	Username    string    `json:"username"`
	Sport       string    `json:"sport" gorm:"index"`
	Deck        Deck      `json:"deck" gorm:"serializer:json"`
	Status      string    `json:"status" gorm:"index"`
	MatchedWith string    `json:"matched_with"`
	BattleID    string    `json:"battle_id"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index"`
}

// BattleResult is the outbox row recording a terminal outcome for an
// external sync process. Created exactly once per battle termination;
// only the Synced flag is ever mutated afterward.
type BattleResult struct {
	gorm.Model
	BattleID     string    `json:"battle_id" gorm:"uniqueIndex"`
	WinnerID     string    `json:"winner_id"`
	LoserID      string    `json:"loser_id"`
	Player1ID    string    `json:"player1_id"`
	Player2ID    string    `json:"player2_id"`
	Player1Score int       `json:"player1_score"`
	Player2Score int       `json:"player2_score"`
	Sport        string    `json:"sport"`
	FinishedAt   time.Time `json:"finished_at"`
	Synced       bool      `json:"synced" gorm:"index"`
}

// Battle lifecycle states.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusFinished   = "FINISHED"
)

// Queue entry states. WAITING is the only non-terminal state.
const (
	QueueWaiting = "WAITING"
	QueueMatched = "MATCHED"
	QueueExpired = "EXPIRED"
)

// Player action kinds resolved by the engine, plus the synthetic kinds
// written to the move log by spells and traps.
const (
	ActionThreePoint    = "THREE_POINT"
	ActionFastBreak     = "FAST_BREAK"
	ActionPostUp        = "POST_UP"
	ActionSpellCast     = "SPELL_CAST"
	ActionTrapSet       = "TRAP_SET"
	ActionTrapTriggered = "TRAP_TRIGGERED"
)

// Spell durations. INSTANT applies immediately and leaves no effect row.
const (
	DurationInstant = "INSTANT"
	DurationTurn    = "TURN"
	DurationQuarter = "QUARTER"
)

// Trap trigger conditions. Only ON_ATTACK is wired into the resolver;
// the other two are accepted and stored for forward compatibility.
const (
	TriggerOnAttack        = "ON_ATTACK"
	TriggerOnOpponentScore = "ON_OPPONENT_SCORE"
	TriggerOnTurnStart     = "ON_TURN_START"
)
