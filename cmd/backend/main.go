package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sdiki1/assistant-add-bot/internal"
	"github.com/sdiki1/assistant-add-bot/internal/chat"
	"github.com/sdiki1/assistant-add-bot/internal/config"
	"github.com/sdiki1/assistant-add-bot/internal/export"
	"github.com/sdiki1/assistant-add-bot/internal/file"
	"github.com/sdiki1/assistant-add-bot/internal/survey"
	"github.com/sdiki1/assistant-add-bot/internal/survey/answer"
	"github.com/sdiki1/assistant-add-bot/internal/survey/question"
	"github.com/sdiki1/assistant-add-bot/internal/survey/response"
	"github.com/sdiki1/assistant-add-bot/internal/survey/result"
	"github.com/sdiki1/assistant-add-bot/internal/trace"
	"github.com/sdiki1/assistant-add-bot/internal/user"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/middleware"
	"github.com/hibiken/asynq"
	_ "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.6.1"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var AppName = "no-app-name"

var Version = "no-version"

var BuildTime = "no-build-time"

var CommitHash = "no-commit-hash"

var Environment = "no-env"

func main() {
	AppName = os.Getenv("APP_NAME")
	if AppName == "" {
		AppName = "assistant-add-bot"
	}

	if BuildTime == "no-build-time" {
		now := time.Now()
		BuildTime = "not provided (now: " + now.Format(time.RFC3339) + ")"
	}

	Environment = os.Getenv("ENV")
	if Environment == "" {
		Environment = "no-env"
	}

	appMetadata := []zap.Field{
		zap.String("app_name", AppName),
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit_hash", CommitHash),
		zap.String("environment", Environment),
	}

	cfg, cfgLog := config.Load()
	err := cfg.Validate()
	if err != nil {
		switch {
		case errors.Is(err, config.ErrDatabaseURLRequired):
			title := "Database URL is required"
			message := "Please set the DATABASE_URL environment variable or provide a config file with the database_url key."
			log.Fatal(EarlyApplicationFailed(title, message))
		case errors.Is(err, config.ErrBotTokenRequired):
			title := "Bot token is required"
			message := "Please set the BOT_TOKEN environment variable or provide a config file with the bot_token key."
			log.Fatal(EarlyApplicationFailed(title, message))
		default:
			log.Fatalf("Failed to validate config: %v, exiting...", err)
		}
	}

	logger, err := initLogger(&cfg, appMetadata)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v, exiting...", err)
	}

	cfgLog.FlushToZap(logger)

	if cfg.WebhookSecret == "" {
		logger.Warn("No webhook secret configured, the webhook endpoint will accept unauthenticated updates")
	}

	logger.Info("Starting application...")

	logger.Info("Starting database migration...")

	err = databaseutil.MigrationUp(cfg.MigrationSource, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to run database migration", zap.Error(err))
	}

	dbPool, err := initDatabasePool(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	shutdown, err := initOpenTelemetry(AppName, Version, BuildTime, CommitHash, Environment, cfg.OtelCollectorUrl)
	if err != nil {
		logger.Fatal("Failed to initialize OpenTelemetry", zap.Error(err))
	}

	validator := internal.NewValidator()
	problemWriter := internal.NewProblemWriter()

	// ============================================
	// Service
	// ============================================

	surveyService := survey.NewService(logger, dbPool)
	questionService := question.NewService(logger, dbPool)
	responseService := response.NewService(logger, dbPool, questionService)
	answerService := answer.NewService(logger, dbPool)
	userService := user.NewService(logger, dbPool)
	fileService := file.NewService(logger, dbPool, cfg.FilesBaseURL, cfg.MaxFileSize)

	projector := result.NewProjector(logger, surveyService, questionService, answerService, fileService, userService)
	classifier := result.NewClassifier(logger, questionService, answerService, cfg.Scoring)

	exportSink := export.NewSink(logger, cfg.ExportWorkbookPath, cfg.ExportAuditPath)

	var exportClient export.Client
	var exportWorker *export.Worker
	if cfg.RedisAddr != "" {
		exportClient = asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		exportWorker = export.NewWorker(logger, cfg.RedisAddr, exportSink)
	} else {
		logger.Warn("No redis address configured, export rows are written synchronously")
	}
	exportService := export.NewService(logger, exportClient, exportSink)

	transport := chat.NewHTTPTransport(logger, cfg.ChatAPIBaseURL, cfg.BotToken)
	engine := chat.NewEngine(
		logger,
		surveyService,
		questionService,
		responseService,
		answerService,
		userService,
		fileService,
		projector,
		classifier,
		exportService,
		transport,
		cfg.AssessmentSurveyCode,
		cfg.AssessmentResultDir,
	)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seedIfEmpty(seedCtx, logger, surveyService, questionService, cfg); err != nil {
		logger.Fatal("Failed to seed surveys", zap.Error(err))
	}
	seedCancel()

	// ============================================
	// Handler
	// ============================================

	chatHandler := chat.NewHandler(logger, validator, problemWriter, engine, cfg.WebhookSecret)
	fileHandler := file.NewHandler(logger, problemWriter, fileService)

	// ============================================
	// Middleware
	// ============================================

	traceMiddleware := trace.NewMiddleware(logger, cfg.Debug)

	basicMiddleware := middleware.NewSet(traceMiddleware.RecoverMiddleware)
	basicMiddleware = basicMiddleware.Append(traceMiddleware.TraceMiddleware)

	// HTTP Server
	mux := http.NewServeMux()

	// Health check route
	mux.Handle("GET /api/healthz", basicMiddleware.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			logger.Error("Failed to write response", zap.Error(err))
		}
	}))

	// Chat webhook
	// ----------------------
	mux.Handle("POST /api/chat/webhook", basicMiddleware.HandlerFunc(chatHandler.Webhook))

	// File Management
	// ----------------------
	mux.Handle("GET /api/files/{id}", basicMiddleware.HandlerFunc(fileHandler.Download))

	// End of API routes
	// ============================================
	// handle interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Info("Starting listening request", zap.String("host", cfg.Host), zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Fail to start server with error", zap.Error(err))
		}
	}()

	if exportWorker != nil {
		go func() {
			if err := exportWorker.Run(); err != nil {
				logger.Fatal("Fail to start export worker with error", zap.Error(err))
			}
		}()
	}

	// wait for context close
	<-ctx.Done()
	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if exportWorker != nil {
		exportWorker.Shutdown()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := shutdown(otelCtx); err != nil {
		logger.Error("Forced to shutdown OpenTelemetry", zap.Error(err))
	}

	logger.Info("Successfully shutdown")
}

func initLogger(cfg *config.Config, appMetadata []zap.Field) (*zap.Logger, error) {
	var err error
	var logger *zap.Logger
	if cfg.Debug {
		logger, err = logutil.ZapDevelopmentConfig().Build()
		if err != nil {
			return nil, err
		}
		logger.Info("Running in debug mode", appMetadata...)
	} else {
		logger, err = logutil.ZapProductionConfig().Build()
		if err != nil {
			return nil, err
		}

		logger = logger.With(appMetadata...)
	}
	defer func() {
		err := logger.Sync()
		if err != nil {
			zap.S().Errorw("Failed to sync logger", zap.Error(err))
		}
	}()

	return logger, nil
}

func initDatabasePool(databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}
	return dbPool, nil
}

func initOpenTelemetry(appName, version, buildTime, commitHash, environment, otelCollectorUrl string) (func(context.Context) error, error) {
	ctx := context.Background()

	serviceName := semconv.ServiceNameKey.String(appName)
	serviceVersion := semconv.ServiceVersionKey.String(version)
	serviceNamespace := semconv.ServiceNamespaceKey.String("assistant")
	serviceCommitHash := attribute.String("service.commit_hash", commitHash)
	serviceEnvironment := semconv.DeploymentEnvironmentKey.String(environment)

	res, err := resource.New(ctx,
		resource.WithAttributes(
			serviceName,
			serviceVersion,
			serviceNamespace,
			serviceCommitHash,
			serviceEnvironment,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	options := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	if otelCollectorUrl != "" {
		conn, err := initGrpcConn(otelCollectorUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
		}

		traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
		options = append(options, sdktrace.WithSpanProcessor(bsp))
	}

	tracerProvider := sdktrace.NewTracerProvider(options...)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tracerProvider.Shutdown, nil
}

func initGrpcConn(target string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	return conn, nil
}

func EarlyApplicationFailed(title, action string) string {
	result := `
-----------------------------------------
Application Failed to Start
-----------------------------------------

# What's wrong?
%s

# How to fix it?
%s

`

	result = fmt.Sprintf(result, title, action)
	return result
}
