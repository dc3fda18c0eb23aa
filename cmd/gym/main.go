package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/gym-crm/internal/config"
	"github.com/Spok95/gym-crm/internal/domain/attendance"
	"github.com/Spok95/gym-crm/internal/domain/members"
	"github.com/Spok95/gym-crm/internal/domain/services"
	"github.com/Spok95/gym-crm/internal/infra/db"
	httpx "github.com/Spok95/gym-crm/internal/infra/http"
	"github.com/Spok95/gym-crm/internal/infra/logger"
	"github.com/Spok95/gym-crm/internal/infra/notify"
	"github.com/Spok95/gym-crm/internal/infra/scheduler"
	"github.com/subosito/gotenv"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string, log *slog.Logger) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN, log); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	membersRepo := members.NewRepo(pool)
	servicesRepo := services.NewRepo(pool)
	visitsRepo := attendance.NewRepo(pool)

	var notifier attendance.Notifier
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AdminChatID, log)
		if err != nil {
			log.Error("telegram init failed", "err", err)
			return
		}
		notifier = tg
		log.Info("telegram notifier enabled", "admin_chat", cfg.Telegram.AdminChatID)
	}

	recorder := attendance.NewRecorder(log, membersRepo, visitsRepo, notifier)
	sweeper := attendance.NewSweeper(log, membersRepo, visitsRepo, notifier)

	sched := scheduler.New(sweeper, log, cfg.Sweep.Schedule)
	if err := sched.Start(); err != nil {
		log.Error("scheduler start failed", "err", err)
		return
	}

	handler := httpx.NewHandler(log, recorder, membersRepo, servicesRepo, visitsRepo)
	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, handler)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	<-sched.Stop().Done()
	log.Info("graceful shutdown complete")
}
