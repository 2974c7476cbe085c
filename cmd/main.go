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

	"brewja/internal/analysis"
	"brewja/internal/api"
	"brewja/internal/brewery"
	"brewja/internal/monitoring"
	"brewja/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"gopkg.in/yaml.v3"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

// Config represents the application configuration
type Config struct {
	DatabaseDialect string         `yaml:"database_dialect"`
	DatabaseDSN     string         `yaml:"database_dsn"`
	LogLevel        string         `yaml:"log_level"`
	LogJSON         bool           `yaml:"log_json"`
	JWTSecret       string         `yaml:"jwt_secret"`
	OpenAIKey       string         `yaml:"openai_key"`
	OpenAIModel     string         `yaml:"openai_model"`
	Engine          brewery.Config `yaml:"engine"`
}

func main() {
	flag.Parse()

	config, log := mustLoadConfig(*configFile)

	// Document store: one JSON document per collection.
	documents, err := store.Open(config.DatabaseDialect, config.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer documents.Close()

	metrics := monitoring.New(prometheus.DefaultRegisterer)

	engine := brewery.New(documents, log, config.Engine)
	engine.Load()
	metrics.ObserveSnapshot(engine.Snapshot())

	advisor := analysis.NewAdvisor(initializeLLM(config, log), log)

	server := api.NewServer(engine, advisor, metrics, log, config.JWTSecret)

	// Start metrics server
	go startMetricsServer(*metricsPort, log)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("API server shutdown error: %v", err)
		}
	}()

	log.Infof("Starting API server on port %d", *port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// mustLoadConfig reads the YAML configuration and builds the logger. A
// missing config file is fine, the defaults run a local sqlite deployment.
func mustLoadConfig(path string) (*Config, *logrus.Logger) {
	config := &Config{
		DatabaseDialect: "sqlite3",
		DatabaseDSN:     "brewja.db",
		LogLevel:        "info",
		OpenAIModel:     "gpt-4o-mini",
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			logrus.Fatalf("Failed to parse configuration %s: %v", path, err)
		}
	}

	log := logrus.New()
	log.SetOutput(os.Stdout)
	if config.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, parseErr := logrus.ParseLevel(config.LogLevel); parseErr == nil {
		log.SetLevel(level)
	}
	if err != nil {
		log.Warnf("Configuration file %s not found, using defaults", path)
	}
	return config, log
}

// initializeLLM builds the analysis model. Analysis is optional; without an
// API key the advisor answers with a fixed notice.
func initializeLLM(config *Config, log *logrus.Logger) llms.LLM {
	if config.OpenAIKey == "" {
		log.Info("No OpenAI key configured, AI analysis disabled")
		return nil
	}
	llm, err := openai.New(
		openai.WithModel(config.OpenAIModel),
		openai.WithToken(config.OpenAIKey),
	)
	if err != nil {
		log.Warnf("Failed to initialize OpenAI client, AI analysis disabled: %v", err)
		return nil
	}
	return llm
}

func startMetricsServer(port int, log *logrus.Logger) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Infof("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Errorf("Metrics server error: %v", err)
	}
}
