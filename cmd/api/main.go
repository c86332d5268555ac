package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/arogyavax/internal/config"
	"github.com/jwalitptl/arogyavax/internal/email"
	adminHandler "github.com/jwalitptl/arogyavax/internal/handler/admin"
	announcementHandler "github.com/jwalitptl/arogyavax/internal/handler/announcement"
	appointmentHandler "github.com/jwalitptl/arogyavax/internal/handler/appointment"
	authHandler "github.com/jwalitptl/arogyavax/internal/handler/auth"
	catalogueHandler "github.com/jwalitptl/arogyavax/internal/handler/catalogue"
	certificateHandler "github.com/jwalitptl/arogyavax/internal/handler/certificate"
	"github.com/jwalitptl/arogyavax/internal/handler/health"
	nurseHandler "github.com/jwalitptl/arogyavax/internal/handler/nurse"
	patientHandler "github.com/jwalitptl/arogyavax/internal/handler/patient"
	recordHandler "github.com/jwalitptl/arogyavax/internal/handler/record"
	"github.com/jwalitptl/arogyavax/internal/middleware"
	"github.com/jwalitptl/arogyavax/internal/repository/postgres"
	"github.com/jwalitptl/arogyavax/internal/router"
	adminService "github.com/jwalitptl/arogyavax/internal/service/admin"
	announcementService "github.com/jwalitptl/arogyavax/internal/service/announcement"
	appointmentService "github.com/jwalitptl/arogyavax/internal/service/appointment"
	"github.com/jwalitptl/arogyavax/internal/service/audit"
	authService "github.com/jwalitptl/arogyavax/internal/service/auth"
	catalogueService "github.com/jwalitptl/arogyavax/internal/service/catalogue"
	certificateService "github.com/jwalitptl/arogyavax/internal/service/certificate"
	nurseService "github.com/jwalitptl/arogyavax/internal/service/nurse"
	patientService "github.com/jwalitptl/arogyavax/internal/service/patient"
	recordService "github.com/jwalitptl/arogyavax/internal/service/record"
	"github.com/jwalitptl/arogyavax/internal/service/reminder"
	stockService "github.com/jwalitptl/arogyavax/internal/service/stock"
	"github.com/jwalitptl/arogyavax/internal/storage"
	"github.com/jwalitptl/arogyavax/internal/tracing"
	"github.com/jwalitptl/arogyavax/pkg/auth"
	"github.com/jwalitptl/arogyavax/pkg/logger"
	"github.com/jwalitptl/arogyavax/pkg/messaging"
	"github.com/jwalitptl/arogyavax/pkg/messaging/redis"
	"github.com/jwalitptl/arogyavax/pkg/metrics"
	"github.com/jwalitptl/arogyavax/pkg/security"
)

const metricsNamespace = "arogyavax"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Console)
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	if err := postgres.ApplySchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(metricsNamespace, registry)

	broker := newBroker(cfg.Redis)
	defer broker.Close()
	events := messaging.NewPublisher(broker)

	var store storage.Storage
	if cfg.MinIO.Enabled() {
		store, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to object storage")
		}
	} else {
		log.Info().Msg("object storage not configured, certificates are not archived")
	}

	mailer := email.NewSender(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	jwtSvc, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize jwt")
	}

	// Initialize repositories
	base := postgres.NewBaseRepository(db, m)
	userRepo := postgres.NewUserRepository(base)
	vaccineRepo := postgres.NewVaccineRepository(base)
	hospitalRepo := postgres.NewHospitalRepository(base)
	recordRepo := postgres.NewRecordRepository(base)
	stockRepo := postgres.NewStockRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	auditRepo := postgres.NewAuditRepository(base)
	announcementRepo := postgres.NewAnnouncementRepository(base)
	statsRepo := postgres.NewStatsRepository(base)

	// Initialize services
	auditSvc := audit.NewService(auditRepo)
	authSvc := authService.NewService(userRepo, security.NewBcryptHasher(cfg.Auth.BcryptCost), jwtSvc, mailer,
		authService.Options{OTPTTL: cfg.Auth.OTPTTL, ExposeOTP: cfg.Auth.ExposeOTP})
	catalogueSvc := catalogueService.NewService(vaccineRepo, hospitalRepo, auditSvc, cfg.Cache.CatalogueTTL,
		catalogueService.DefaultHospital{Name: cfg.Hospital.DefaultName, Location: cfg.Hospital.DefaultLocation})
	reminderSvc := reminder.NewService(userRepo, vaccineRepo, recordRepo)
	recordSvc := recordService.NewService(userRepo, vaccineRepo, recordRepo, catalogueSvc, events, auditSvc, m)
	stockSvc := stockService.NewService(stockRepo, vaccineRepo, catalogueSvc, events, auditSvc, m)
	appointmentSvc := appointmentService.NewService(appointmentRepo, userRepo, vaccineRepo, hospitalRepo, events, m)
	patientSvc := patientService.NewService(recordRepo, appointmentRepo, reminderSvc)
	nurseSvc := nurseService.NewService(userRepo, recordRepo, reminderSvc, auditSvc)
	adminSvc := adminService.NewService(userRepo, hospitalRepo, statsRepo, auditSvc)
	certificateSvc := certificateService.NewService(recordRepo, store, cfg.MinIO.PresignExpiry, events, auditSvc, m)
	announcementSvc := announcementService.NewService(announcementRepo, auditSvc)

	admin := cfg.Auth.BootstrapAdmin
	if admin.Email != "" {
		if err := authSvc.EnsureBootstrapAdmin(ctx, admin.Name, admin.Email, admin.Password); err != nil {
			log.Fatal().Err(err).Msg("failed to create bootstrap admin")
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	tracingService := ""
	if tracing.Enabled(cfg.Tracing) {
		tracingService = cfg.Tracing.ServiceName
	}

	// Setup router
	r := router.NewRouter(
		middleware.NewAuthMiddleware(jwtSvc),
		health.NewHandler(db),
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			CORSConfig:       corsConfig,
			RequestTimeout:   cfg.Server.RequestTimeout,
			StaticDir:        cfg.StaticDir,
			TracingService:   tracingService,
			MetricsPrefix:    metricsNamespace,
			Registry:         registry,
		},
		authHandler.NewHandler(authSvc),
		catalogueHandler.NewHandler(catalogueSvc),
		recordHandler.NewHandler(recordSvc, stockSvc),
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		nurseHandler.NewHandler(nurseSvc),
		adminHandler.NewHandler(adminSvc),
		certificateHandler.NewHandler(certificateSvc),
		announcementHandler.NewHandler(announcementSvc),
	)
	if err := r.Setup(); err != nil {
		log.Fatal().Err(err).Msg("failed to setup routes")
	}

	if rl := r.RateLimiter(); rl != nil {
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					rl.Cleanup()
				}
			}
		}()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// newBroker connects to Redis, falling back to a no-op broker so the API
// keeps serving when events cannot be delivered.
func newBroker(cfg config.RedisConfig) eventBroker {
	if cfg.URL == "" {
		log.Info().Msg("redis not configured, events are discarded")
		return messaging.NopBroker{}
	}
	b, err := redis.NewRedisBroker(cfg.ToBrokerConfig(), &log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, events are discarded")
		return messaging.NopBroker{}
	}
	return b
}

type eventBroker interface {
	messaging.Broker
	messaging.Deduper
}
