package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	jwttoken "vkyc/internal/jwt_token"
	"vkyc/internal/platform/config"
	"vkyc/internal/platform/httpserver"
	"vkyc/internal/platform/kafka"
	"vkyc/internal/platform/logger"
	platformmetrics "vkyc/internal/platform/metrics"
	"vkyc/internal/platform/postgres"
	platformredis "vkyc/internal/platform/redis"
	"vkyc/internal/readiness"
	httptransport "vkyc/internal/transport/http"
	"vkyc/internal/verification/catalog"
	verificationhandler "vkyc/internal/verification/handler"
	verificationmetrics "vkyc/internal/verification/metrics"
	"vkyc/internal/verification/models"
	"vkyc/internal/verification/publisher"
	verificationservice "vkyc/internal/verification/service"
	sessionstore "vkyc/internal/verification/store/session"
	submissionstore "vkyc/internal/verification/store/submission"
	"vkyc/internal/verification/workflow"
	"vkyc/pkg/platform/audit"
	auditpublisher "vkyc/pkg/platform/audit/publisher"
	"vkyc/pkg/platform/audit/publishers/compliance"
	auditmemory "vkyc/pkg/platform/audit/store/memory"
	auditpostgres "vkyc/pkg/platform/audit/store/postgres"
	"vkyc/pkg/platform/circuit"
	txcontext "vkyc/pkg/platform/tx"
)

// infra holds the optional backing services. Nil fields select in-memory
// fallbacks.
type infra struct {
	redis *platformredis.Client
	db    *sql.DB
	kafka *kgo.Client
}

func (i *infra) close() {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
}

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDevSigningKey() {
		log.Warn("using development JWT signing key; set JWT_SIGNING_KEY in production")
	}

	wf, err := buildWorkflow(cfg.Workflow)
	if err != nil {
		return err
	}
	log.Info("verification catalog loaded",
		"catalog_version", wf.Catalog().Version(),
		"submit_policy", wf.Policy().Name(),
	)

	deps, err := connectInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	reg := prometheus.DefaultRegisterer

	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	var submissions verificationservice.SubmissionStore = submissionstore.NewInMemory()
	var txRunner txcontext.Runner = txcontext.NopRunner{}
	if deps.db != nil {
		pgAudit := auditpostgres.New(deps.db)
		if err := pgAudit.EnsureSchema(ctx); err != nil {
			return err
		}
		pgSubmissions := submissionstore.NewPostgres(deps.db)
		if err := pgSubmissions.EnsureSchema(ctx); err != nil {
			return err
		}
		auditStore = pgAudit
		submissions = pgSubmissions
		txRunner = txcontext.SQLRunner{DB: deps.db}
	}

	var sessions verificationservice.SessionStore = sessionstore.NewInMemory()
	if deps.redis != nil {
		sessions = sessionstore.NewRedis(deps.redis.Client, cfg.Redis.SessionTTL)
	}

	var submissionPublisher verificationservice.SubmissionPublisher = publisher.Noop{}
	if deps.kafka != nil {
		if cfg.Kafka.EnsureTopic {
			if err := kafka.EnsureTopic(ctx, deps.kafka, cfg.Kafka.SubmissionsTopic,
				cfg.Kafka.TopicPartitions, cfg.Kafka.ReplicationFactor, log); err != nil {
				return err
			}
		}
		submissionPublisher = publisher.NewGuarded(
			publisher.NewKafka(deps.kafka, cfg.Kafka.SubmissionsTopic),
			circuit.New("kafka-submissions"),
			log,
		)
	}

	opsAudit := auditpublisher.NewPublisher(auditStore,
		auditpublisher.WithAsyncBuffer(cfg.Audit.BufferSize),
		auditpublisher.WithLogger(log),
		auditpublisher.WithMetrics(auditpublisher.NewMetrics(reg)),
	)
	defer opsAudit.Close()
	complianceAudit := compliance.New(auditStore,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics(reg)),
	)

	svc := verificationservice.New(wf, sessions, submissions,
		verificationservice.WithLogger(log),
		verificationservice.WithMetrics(verificationmetrics.New(reg)),
		verificationservice.WithAuditPublisher(opsAudit),
		verificationservice.WithComplianceAuditor(complianceAudit),
		verificationservice.WithSubmissionPublisher(submissionPublisher),
		verificationservice.WithTxRunner(newBoundedTx(txRunner, 0)),
		verificationservice.WithReadinessThresholds(readiness.Thresholds{
			Good: cfg.Readiness.GoodThreshold,
			Fair: cfg.Readiness.FairThreshold,
		}),
	)

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        platformmetrics.New(reg),
		Gatherer:       prometheus.DefaultGatherer,
		RequestTimeout: cfg.RequestTimeout,
		Validator:      jwttoken.NewMiddlewareAdapter(jwtService),
		AuthFailures:   authFailureAuditor{emitter: opsAudit, logger: log},
		HealthChecks:   deps.healthChecks(),
		Modules: []httptransport.RouteRegistrar{
			verificationhandler.New(svc, log),
		},
	})

	srv := httpserver.New(cfg.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting vkyc server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func buildWorkflow(cfg config.WorkflowConfig) (*workflow.Workflow, error) {
	cat, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	required := make([]models.StepID, 0, len(cfg.RequiredSteps))
	for _, id := range cfg.RequiredSteps {
		required = append(required, models.StepID(id))
	}
	policy, err := workflow.ParsePolicy(cfg.SubmitPolicy, cfg.MinEvaluated, required, cat)
	if err != nil {
		return nil, err
	}
	return workflow.New(cat, policy), nil
}

func connectInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	deps := &infra{}

	rc, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		log.Info("REDIS_URL not set, sessions kept in memory")
	}
	deps.redis = rc

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		deps.close()
		return nil, err
	}
	if db == nil {
		log.Info("DATABASE_URL not set, submissions and audit kept in memory")
	}
	deps.db = db

	kc, err := kafka.New(cfg.Kafka)
	if err != nil {
		deps.close()
		return nil, err
	}
	if kc == nil {
		log.Info("KAFKA_BROKERS not set, submission hand-off disabled")
	}
	deps.kafka = kc
	return deps, nil
}

func (i *infra) healthChecks() map[string]httptransport.HealthCheck {
	checks := map[string]httptransport.HealthCheck{}
	if i.redis != nil {
		checks["redis"] = i.redis.Health
	}
	if i.db != nil {
		checks["postgres"] = i.db.PingContext
	}
	if i.kafka != nil {
		client := i.kafka
		checks["kafka"] = func(ctx context.Context) error { return kafka.Health(ctx, client) }
	}
	return checks
}
