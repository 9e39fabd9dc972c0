package main

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fairwaylabs/roundsim/internal/calibration"
	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/store"
	"github.com/fairwaylabs/roundsim/pkg/config"
	"github.com/fairwaylabs/roundsim/pkg/logger"
)

// Headless calibration runner: seeds the loop from the persisted state, runs
// until pass or budget exhaustion, and persists a passing multiplier pair.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger("info", cfg.IsDevelopment())
	log.Info("Starting headless calibration run")

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	defer redisClient.Close()

	ctx := context.Background()
	calibrationStore := store.NewCalibrationStore(redisClient)
	if state, found, err := calibrationStore.Load(ctx); err != nil {
		log.WithError(err).Warn("Failed to load persisted calibration, starting from identity")
	} else if found {
		dispersion.SetState(state)
	}

	loop := calibration.New(calibration.Config{
		RoundsPerTier: cfg.RoundsPerTier,
		MaxAttempts:   cfg.CalibrationAttempts,
		Step:          cfg.CalibrationStep,
		Workers:       cfg.SimulationWorkers,
		ShotCap:       cfg.ShotCap,
		Rating:        cfg.CourseRating,
		Slope:         cfg.CourseSlope,
	}, log)

	result, err := loop.Run()
	if err != nil {
		log.Fatalf("Calibration precondition failed: %v", err)
	}

	entry := logger.WithCalibration(result.Attempts,
		result.Final.DispersionScale, result.Final.ChipMultiplierScale)

	if !result.Passed {
		last := result.Reports[len(result.Reports)-1]
		entry.WithField("failures", last.Failures).Error("Calibration did not converge")
		os.Exit(1)
	}

	if err := calibrationStore.Save(ctx, result.Final); err != nil {
		log.Fatalf("Failed to persist calibration state: %v", err)
	}

	entry.Info("Calibration passed and persisted")
}
