package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fairwaylabs/roundsim/internal/calibration"
	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/store"
	"github.com/fairwaylabs/roundsim/internal/websocket"
	"github.com/fairwaylabs/roundsim/pkg/config"
)

// calibrationTopic is the websocket topic attempt reports stream on
const calibrationTopic = "calibration"

// CalibrationHandler handles calibration and verification endpoints
type CalibrationHandler struct {
	store  *store.CalibrationStore
	config *config.Config
	wsHub  *websocket.Hub
	logger *logrus.Logger
}

// NewCalibrationHandler creates a new calibration handler
func NewCalibrationHandler(store *store.CalibrationStore, cfg *config.Config, wsHub *websocket.Hub, logger *logrus.Logger) *CalibrationHandler {
	return &CalibrationHandler{store: store, config: cfg, wsHub: wsHub, logger: logger}
}

// GetCalibration returns the active multiplier pair
func (h *CalibrationHandler) GetCalibration(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":      dispersion.Snapshot(),
		"fetched_at": time.Now(),
	})
}

// VerifyRequest tunes a read-only verification batch
type VerifyRequest struct {
	RoundsPerTier int `json:"rounds_per_tier,omitempty"`
}

// Verify runs one batch across the verification tiers under the current
// calibration state without adjusting anything.
func (h *CalibrationHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	rounds := req.RoundsPerTier
	if rounds <= 0 {
		rounds = h.config.RoundsPerTier
	}

	loop := calibration.New(calibration.Config{
		RoundsPerTier: rounds,
		Workers:       h.config.SimulationWorkers,
		ShotCap:       h.config.ShotCap,
		Rating:        h.config.CourseRating,
		Slope:         h.config.CourseSlope,
	}, h.logger)

	state := dispersion.Snapshot()
	tiers := loop.RunBatch(state)
	failures := calibration.Evaluate(tiers)

	c.JSON(http.StatusOK, gin.H{
		"state":    state,
		"tiers":    tiers,
		"passing":  len(failures) == 0,
		"failures": failures,
	})
}

// CalibrateRequest tunes a full calibration run
type CalibrateRequest struct {
	RoundsPerTier int     `json:"rounds_per_tier,omitempty"`
	MaxAttempts   int     `json:"max_attempts,omitempty"`
	Step          float64 `json:"step,omitempty"`
}

// Calibrate runs the full calibration loop and persists a passing multiplier
// pair. A failed run reports the last attempted state and failing conditions;
// proceeding with it is the caller's choice.
func (h *CalibrationHandler) Calibrate(c *gin.Context) {
	var req CalibrateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	cfg := calibration.Config{
		RoundsPerTier: req.RoundsPerTier,
		MaxAttempts:   req.MaxAttempts,
		Step:          req.Step,
		Workers:       h.config.SimulationWorkers,
		ShotCap:       h.config.ShotCap,
		Rating:        h.config.CourseRating,
		Slope:         h.config.CourseSlope,
	}
	if cfg.RoundsPerTier <= 0 {
		cfg.RoundsPerTier = h.config.RoundsPerTier
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = h.config.CalibrationAttempts
	}
	if cfg.Step <= 0 {
		cfg.Step = h.config.CalibrationStep
	}
	cfg.OnAttempt = func(report calibration.AttemptReport) {
		h.wsHub.BroadcastToTopic(calibrationTopic, report)
	}

	result, err := calibration.New(cfg, h.logger).Run()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Calibration precondition failed: " + err.Error(),
			Code:  "CALIBRATION_PRECONDITION",
		})
		return
	}

	if result.Passed {
		if err := h.store.Save(c.Request.Context(), result.Final); err != nil {
			h.logger.WithError(err).Error("Failed to persist calibration state")
		}
	}

	c.JSON(http.StatusOK, result)
}
