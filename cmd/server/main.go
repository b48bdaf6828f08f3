package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cm_sheet/internal/api"
	"cm_sheet/internal/app/service"
	"cm_sheet/internal/app/worker"
	"cm_sheet/internal/common/security"
	"cm_sheet/internal/domain/repository"
	"cm_sheet/internal/platform/codeforces"
	"cm_sheet/internal/platform/config"
	"cm_sheet/internal/platform/database"
	"cm_sheet/internal/platform/logger"
	"cm_sheet/internal/platform/queue"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	if err := config.Load(); err != nil {
		// no logger yet
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	cfg := config.AppConfig

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	// 2. Initialize JWT
	security.InitJWT(cfg.JWTKey, cfg.JWTExp)

	ctx := context.Background()

	// 3. Initialize Database
	db, err := database.Connect(ctx, cfg.DBConnStr)
	if err != nil {
		log.Fatal("Database unavailable", zap.Error(err))
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, log); err != nil {
		log.Fatal("Migrations failed", zap.Error(err))
	}
	log.Info("Database connected")

	// 4. Initialize Redis
	rdb, err := queue.Connect(ctx, queue.RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		log.Fatal("Redis unavailable", zap.Error(err))
	}
	defer rdb.Close()
	log.Info("Redis connected")

	// 5. Load the problem list once
	problems, err := repository.NewFileProblemRepository(cfg.ProblemsPath).Load()
	if err != nil {
		log.Fatal("Problem list unavailable", zap.String("path", cfg.ProblemsPath), zap.Error(err))
	}
	log.Info("Problem list loaded", zap.Int("problems", len(problems)))

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	progressRepo := repository.NewPgProgressRepository(db)
	judgeRepo := repository.NewRedisJudgeProgressRepository(rdb)
	prefsRepo := repository.NewRedisPreferencesRepository(rdb)

	// 7. Initialize Services
	cf := codeforces.NewClient(cfg.CodeforcesAPIURL, codeforces.WithTimeout(cfg.CodeforcesTimeout))
	catalog := service.NewProblemCatalog(problems)
	syncService := service.NewSyncService(userRepo, judgeRepo, cf, rdb,
		service.SyncOptions{QueueName: cfg.SyncQueueName, LockTTL: cfg.SyncLockTTL()}, log)
	authService := service.NewAuthService(userRepo, syncService, log)
	progressService := service.NewProgressService(catalog, progressRepo, log)
	boardService := service.NewBoardService(catalog, progressService, syncService)
	prefsService := service.NewPreferencesService(prefsRepo)

	// 8. Start the sync worker unless cmd/worker runs it
	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()
	workerDone := make(chan struct{})
	if cfg.SyncWorkerEmbedded {
		syncWorker := worker.NewSyncWorker(rdb, syncService, cfg.SyncQueueName, log)
		go func() {
			syncWorker.Start(workerCtx)
			close(workerDone)
		}()
	} else {
		close(workerDone)
	}

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(api.Services{
		Auth:        authService,
		Board:       boardService,
		Progress:    progressService,
		Sync:        syncService,
		Preferences: prefsService,
	}, cfg.CORSAllowedOrigins, log)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("Server starting", zap.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Could not listen", zap.String("port", cfg.APIPort), zap.Error(err))
		}
	}()

	<-stop

	log.Info("Shutting down server")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Sync worker did not stop in time")
	}
	log.Info("Server and worker stopped gracefully")
}
