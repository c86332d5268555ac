package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/config"
	"github.com/jwalitptl/arogyavax/internal/email"
	"github.com/jwalitptl/arogyavax/internal/repository/postgres"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	"github.com/jwalitptl/arogyavax/internal/service/reminder"
	"github.com/jwalitptl/arogyavax/internal/worker"
	"github.com/jwalitptl/arogyavax/pkg/logger"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/messaging/redis"
	"github.com/jwalitptl/arogyavax/pkg/metrics"
	jobs "github.com/jwalitptl/arogyavax/pkg/worker"
)

func setupMetricsServer(port int, registry *prometheus.Registry, db interface {
	PingContext(context.Context) error
}) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Console)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.NewMetrics("arogyavax_worker", registry)

	mailer := email.NewSender(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	base := postgres.NewBaseRepository(db, m)
	userRepo := postgres.NewUserRepository(base)
	vaccineRepo := postgres.NewVaccineRepository(base)
	recordRepo := postgres.NewRecordRepository(base)
	auditSvc := audit.NewService(postgres.NewAuditRepository(base))
	reminderSvc := reminder.NewService(userRepo, vaccineRepo, recordRepo)

	dispatcher := worker.NewReminderDispatcher(reminderSvc, broker, messaging.NewPublisher(broker), mailer, m)
	cleanup := worker.NewAuditCleanupWorker(auditSvc, cfg.Worker.AuditRetentionDays)
	notifier := worker.NewNotifier(mailer, 3, 2*time.Second)

	metricsSrv := setupMetricsServer(cfg.Worker.MetricsPort, registry, db)

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	for _, p := range []*jobs.Periodic{
		jobs.NewPeriodic("reminders", cfg.Worker.ReminderInterval, dispatcher.Run),
		jobs.NewPeriodic("audit-cleanup", cfg.Worker.AuditCleanupInterval, cleanup.Run),
	} {
		p := p
		run(func() { p.Start(ctx) })
	}
	run(func() {
		if err := messaging.Consume(ctx, broker, notifier.Handlers()); err != nil {
			log.Error().Err(err).Msg("event consumer stopped")
		}
	})

	log.Info().Int("metrics_port", cfg.Worker.MetricsPort).Msg("worker started")
	<-ctx.Done()
	log.Info().Msg("shutting down...")

	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("metrics server forced to shutdown")
	}
}
