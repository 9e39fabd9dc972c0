package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fairwaylabs/roundsim/internal/api/handlers"
	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/store"
	"github.com/fairwaylabs/roundsim/internal/websocket"
	"github.com/fairwaylabs/roundsim/pkg/config"
	"github.com/fairwaylabs/roundsim/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithService("roundsim").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting round simulation service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("roundsim").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	defer redisClient.Close()

	ctx := context.Background()
	calibrationStore := store.NewCalibrationStore(redisClient)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithService("roundsim").WithError(err).
			Warn("Redis unreachable, starting with identity calibration")
	} else if state, found, err := calibrationStore.Load(ctx); err != nil {
		logger.WithService("roundsim").WithError(err).Warn("Failed to load calibration state")
	} else if found {
		dispersion.SetState(state)
		logger.WithService("roundsim").WithFields(logrus.Fields{
			"dispersion_scale": state.DispersionScale,
			"chip_scale":       state.ChipMultiplierScale,
		}).Info("Restored persisted calibration state")
	}

	wsHub := websocket.NewHub(structuredLogger)
	go wsHub.Run()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	simulationHandler := handlers.NewSimulationHandler(wsHub, structuredLogger)
	calibrationHandler := handlers.NewCalibrationHandler(calibrationStore, cfg, wsHub, structuredLogger)
	healthHandler := handlers.NewHealthHandler(redisClient, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/simulate/hole", simulationHandler.SimulateHole)
		apiV1.POST("/simulate/round", simulationHandler.SimulateRound)
		apiV1.POST("/verify", calibrationHandler.Verify)
		apiV1.POST("/calibrate", calibrationHandler.Calibrate)
		apiV1.GET("/calibration", calibrationHandler.GetCalibration)
	}

	// live shot stream for interactive animation
	router.GET("/ws/rounds/:topic", wsHub.HandleWebSocket)

	router.GET("/health", healthHandler.GetHealth)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("roundsim").Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("roundsim").Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithService("roundsim").Errorf("Forced shutdown: %v", err)
	}
}
