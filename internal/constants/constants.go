package constants

// Environment variable keys.
const (
	EnvConfigPath = "GAMBIT_CONFIG"
	EnvDBPath     = "GAMBIT_DB"
)

// Routes used by the backend router.
const (
	RouteAPIPrefix = "/api"

	RouteVersion = "/version"

	RouteBattles      = "/battles"
	RouteBattleByID   = "/battles/:battleID"
	RouteBattleAction = "/battles/:battleID/action"
	RouteBattleSpell  = "/battles/:battleID/spell"
	RouteBattleTrap   = "/battles/:battleID/trap"

	RouteQueueJoin    = "/queue/join"
	RouteQueueStatus  = "/queue/status"
	RouteQueueLeave   = "/queue/leave"
	RouteQueueExpire  = "/queue/expire"
	RouteQueueCleanup = "/queue/cleanup"

	RouteResultsUnsynced = "/results/unsynced"
	RouteResultSynced    = "/results/:battleID/synced"
)

// Common JSON response keys.
const (
	JSONKeyError  = "error"
	JSONKeyStatus = "status"
)

// Common error messages used across API handlers.
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidBattleID = "Invalid battle ID"
	ErrBattleNotFound  = "Battle not found"
	ErrBattleFinished  = "Battle already finished"
	ErrNotYourTurn     = "Not your turn"
	ErrCardNotFound    = "Card not found in deck"
	ErrBattleExists    = "Battle already exists"
	ErrPlayerRequired  = "player_id is required"

	ErrFailedCreateBattle = "Failed to create battle"
	ErrFailedFetchBattle  = "Failed to fetch battle"
	ErrFailedStoreAction  = "Failed to store action"
	ErrFailedCastSpell    = "Failed to cast spell"
	ErrFailedSetTrap      = "Failed to set trap"

	ErrFailedJoinQueue    = "Failed to join queue"
	ErrFailedQueueStatus  = "Failed to fetch queue status"
	ErrFailedLeaveQueue   = "Failed to leave queue"
	ErrFailedExpireQueue  = "Failed to expire queue entry"
	ErrFailedCleanupQueue = "Failed to clean up queue"

	ErrFailedFetchResults = "Failed to fetch results"
	ErrFailedSyncResult   = "Failed to mark result synced"
)

// Logging field names.
const (
	LogFieldBattleID = "battle_id"
	LogFieldUserID   = "user_id"
	LogFieldSport    = "sport"
	LogFieldAddr     = "addr"
	LogFieldCleaned  = "cleaned"
)
