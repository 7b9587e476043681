package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	_ "votee/docs"
	"votee/internal/config"
	"votee/internal/domain/program"
	"votee/internal/domain/user"
	api "votee/internal/http"
	"votee/internal/metrics"
	jwtpkg "votee/internal/platform/jwt"
	"votee/internal/platform/pda"
	"votee/internal/repository"
	"votee/internal/worker"
)

// @title           Votee API
// @version         1.0
// @description     Deterministic on-chain style voting program served over HTTP with JWT auth
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	programID := pda.FromName("votee")
	if cfg.ProgramID != "" {
		if programID, err = pda.Parse(cfg.ProgramID); err != nil {
			logger.Error("invalid PROGRAM_ID", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("store open error", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	metrics.Register()

	userSvc := user.NewService(stores.Users)
	prog := program.NewService(programID, stores.Accounts, clockwork.NewRealClock())
	jwtMgr := jwtpkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer)

	events := make(chan worker.InstructionEvent, 100)
	instructionWorker := worker.NewInstructionWorker(events, logger)

	router := api.NewRouter(userSvc, prog, jwtMgr, events, api.Options{
		VoteRate:  rate.Every(time.Minute / time.Duration(cfg.VoteRatePerMin)),
		VoteBurst: cfg.VoteBurst,
		TokenTTL:  cfg.TokenTTL,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	go instructionWorker.Run(workerCtx)

	go func() {
		logger.Info("server listening", "port", cfg.Port, "driver", cfg.DBDriver, "program_id", programID.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	cancelWorker()

	logger.Info("server stopped")
}
