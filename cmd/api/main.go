package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storage-diagnostics/internal/api"
	"storage-diagnostics/internal/config"
	"storage-diagnostics/internal/logging"
	"storage-diagnostics/internal/pipeline"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("API_CONFIG"), "Optional: path to a YAML or INI config")
	preload := flag.String("load", "", "Optional: dataset file to load at startup")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	engine, err := pipeline.New(pipeline.Config{
		ParserOptions: cfg.ParserOptions(),
		ValueRange:    cfg.ValueRange(),
		CacheTTL:      cfg.CacheTTL(),
	})
	if err != nil {
		logrus.Fatalf("Failed to create pipeline: %v", err)
	}

	if *preload != "" {
		raw, err := os.ReadFile(*preload)
		if err != nil {
			logrus.Fatalf("Failed to read %s: %v", *preload, err)
		}
		if _, err := engine.Load(raw, *preload); err != nil {
			logrus.Fatalf("Failed to load %s: %v", *preload, err)
		}
	}

	router := api.NewRouter(cfg, engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr": srv.Addr,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down API server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Graceful shutdown failed: %v", err)
	}
}
