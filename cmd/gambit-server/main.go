package main

import (
	"os"

	"github.com/KPWithCode/gambit-mobile/internal/api"
	"github.com/KPWithCode/gambit-mobile/internal/config"
	"github.com/KPWithCode/gambit-mobile/internal/constants"
	"github.com/KPWithCode/gambit-mobile/internal/logging"
	"github.com/KPWithCode/gambit-mobile/internal/service"
	"github.com/KPWithCode/gambit-mobile/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv(constants.EnvConfigPath))
	if err != nil {
		logging.Fatal("Missing or invalid gambit configuration", err, logging.Fields{"config_path": os.Getenv(constants.EnvConfigPath)})
	}

	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/gambit.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	handler := api.NewBattleHandler(repo, cfg.QueueTimeout, cfg.RecentMovesLimit)

	// Background sweep: flip stale WAITING matchmaking entries to
	// EXPIRED on a fixed interval.
	sched, err := gocron.NewScheduler()
	if err != nil {
		logging.Fatal("Failed to create scheduler", err, nil)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(cfg.CleanupInterval),
		gocron.NewTask(func() {
			cleaned, err := service.CleanupExpired(repo)
			if err != nil {
				logging.Error("queue cleanup sweep failed", err, nil)
				return
			}
			if cleaned > 0 {
				logging.Info("expired stale queue entries", logging.Fields{constants.LogFieldCleaned: cleaned})
			}
		}),
	)
	if err != nil {
		logging.Fatal("Failed to schedule queue cleanup", err, nil)
	}
	sched.Start()
	defer func() { _ = sched.Shutdown() }()

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)

		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, handler.SubmitAction)
		apiRoutes.POST(constants.RouteBattleSpell, handler.CastSpell)
		apiRoutes.POST(constants.RouteBattleTrap, handler.SetTrap)

		apiRoutes.POST(constants.RouteQueueJoin, handler.JoinQueue)
		apiRoutes.GET(constants.RouteQueueStatus, handler.GetQueueStatus)
		apiRoutes.POST(constants.RouteQueueLeave, handler.LeaveQueue)
		apiRoutes.POST(constants.RouteQueueExpire, handler.MarkExpired)
		apiRoutes.POST(constants.RouteQueueCleanup, handler.CleanupExpired)

		apiRoutes.GET(constants.RouteResultsUnsynced, handler.ListUnsyncedResults)
		apiRoutes.POST(constants.RouteResultSynced, handler.MarkResultSynced)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
