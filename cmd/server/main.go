package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/esrrgltshibamb2000/esr-election/internal/adapters/handler/http"
	"github.com/esrrgltshibamb2000/esr-election/internal/adapters/notify/whatsapp"
	"github.com/esrrgltshibamb2000/esr-election/internal/adapters/repository/memory"
	"github.com/esrrgltshibamb2000/esr-election/internal/adapters/repository/postgres"
	"github.com/esrrgltshibamb2000/esr-election/internal/adapters/repository/sqlite"
	"github.com/esrrgltshibamb2000/esr-election/internal/config"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	settings, err := config.ParseSettings(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.LoadElection(settings.ElectionConfig)
	if err != nil {
		log.Fatal(err)
	}
	if settings.AdminPIN != "" {
		cfg.AdminPIN = settings.AdminPIN
	}

	repo, closeRepo, err := openRepository(settings)
	if err != nil {
		log.Fatal(err)
	}
	defer closeRepo()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := services.NewBallotService(ctx, repo, cfg)
	if err != nil {
		log.Fatal(err)
	}
	exchange := services.NewExchangeService(store, cfg)
	tally := services.NewTallyService(store, cfg)

	handler := http.NewHandler(
		http.NewElectionHandler(cfg),
		http.NewBallotHandler(store, whatsapp.NewNotifier(cfg)),
		http.NewResultsHandler(tally),
		http.NewAdminHandler(store, exchange),
		cfg.AdminPIN,
		settings.CORSOrigins,
	)
	server := &stdhttp.Server{Addr: settings.HTTPAddr, Handler: handler}

	go func() {
		slog.Info("server listening", "addr", settings.HTTPAddr, "store", settings.StoreDriver, "ballots", store.Count())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func openRepository(settings config.Settings) (ports.BallotRepository, func(), error) {
	switch settings.StoreDriver {
	case config.DriverMemory:
		return memory.NewBallotRepository(), func() {}, nil

	case config.DriverPostgres:
		db, err := sql.Open("postgres", settings.Postgres.ConnString())
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to reach postgres: %w", err)
		}
		return postgres.NewBallotRepository(db), func() { db.Close() }, nil

	default:
		db, err := sqlite.Open(settings.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewBallotRepository(db), func() { db.Close() }, nil
	}
}
