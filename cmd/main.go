package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gootelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/forgeops/buildboard/internal/db"
	"github.com/forgeops/buildboard/internal/handlers"
	"github.com/forgeops/buildboard/internal/logging"
	"github.com/forgeops/buildboard/internal/metrics"
	"github.com/forgeops/buildboard/utils"
)

const version = "0.1.0"

func setupObservability(ctx context.Context, metricsPort int) (func(), error) {
	otlpExp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint("localhost:4318"), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}
	promExp, err := otelprom.New()
	if err != nil {
		return nil, err
	}
	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("buildboard"),
		),
	)
	tracerProvider := trace.NewTracerProvider(
		trace.WithBatcher(otlpExp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	meterProvider := metric.NewMeterProvider(
		metric.WithReader(promExp),
		metric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)
	metrics.Register()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.ListenAndServe(fmt.Sprintf(":%d", metricsPort), nil)
	}()
	return func() {
		_ = tracerProvider.Shutdown(ctx)
		_ = meterProvider.Shutdown(ctx)
	}, nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	migrate := flag.Bool("migrate", false, "run schema migration and exit")
	flag.Parse()

	log := logging.C("main")
	ctx := context.Background()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.Init(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if *migrate {
		if err := db.Migrate(db.DB); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		log.Info("migration complete")
		return
	}

	if err := db.SeedAdmin(db.DB, cfg.AdminUsername, cfg.AdminPassword, cfg.IsDev()); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	cleanup, err := setupObservability(ctx, cfg.MetricsPort)
	if err != nil {
		log.Fatalf("failed to set up observability: %v", err)
	}
	defer cleanup()

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(gootelgin.Middleware("buildboard"))
	r.Use(metrics.Middleware())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	handlers.Register(r, db.DB, cfg.JWTSecret, version, time.Now())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}
	go func() {
		log.Infof("starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("server shutdown error: %v", err)
	}
	log.Info("server stopped")
}
