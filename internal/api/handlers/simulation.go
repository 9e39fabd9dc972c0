package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/sim"
	"github.com/fairwaylabs/roundsim/internal/skill"
	"github.com/fairwaylabs/roundsim/internal/websocket"
	"github.com/fairwaylabs/roundsim/pkg/logger"
)

// ErrorResponse is the envelope every failed request returns
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// SimulationHandler handles simulation endpoints
type SimulationHandler struct {
	wsHub  *websocket.Hub
	logger *logrus.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(wsHub *websocket.Hub, logger *logrus.Logger) *SimulationHandler {
	return &SimulationHandler{wsHub: wsHub, logger: logger}
}

// HoleRequest asks for one simulated hole
type HoleRequest struct {
	Hole    sim.HoleSpec  `json:"hole"`
	Skill   skill.Profile `json:"skill"`
	Seed    int64         `json:"seed,omitempty"`
	Options sim.Options   `json:"options,omitempty"`
}

// HoleResponse returns the resolved shot list
type HoleResponse struct {
	ID        uuid.UUID        `json:"id"`
	Result    sim.HoleResult   `json:"result"`
	Calib     dispersion.State `json:"calibration"`
	CreatedAt time.Time        `json:"created_at"`
}

// RoundRequest asks for one simulated 18-hole round
type RoundRequest struct {
	Round   sim.RoundSpec `json:"round"`
	Skill   skill.Profile `json:"skill"`
	Seed    int64         `json:"seed,omitempty"`
	Options sim.Options   `json:"options,omitempty"`
}

// RoundResponse returns the round result plus aggregate statistics
type RoundResponse struct {
	Result    sim.RoundResult  `json:"result"`
	Calib     dispersion.State `json:"calibration"`
	CreatedAt time.Time        `json:"created_at"`
}

func (h *SimulationHandler) validProfile(p skill.Profile) bool {
	switch p.Kind {
	case skill.ProfileHandicap, skill.ProfileTier:
		return true
	default:
		return false
	}
}

// SimulateHole resolves one hole stroke by stroke
func (h *SimulationHandler) SimulateHole(c *gin.Context) {
	var req HoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}
	if !h.validProfile(req.Skill) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Skill profile must be a numeric handicap or a named tier",
			Code:  "INVALID_SKILL",
		})
		return
	}
	if req.Hole.Par < 3 || req.Hole.Par > 6 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Hole par must be between 3 and 6",
			Code:  "INVALID_HOLE",
		})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runner := sim.NewRoundRunner(req.Skill, dispersion.Snapshot(), seed)
	result := runner.PlayRound(sim.RoundSpec{Holes: []sim.HoleSpec{req.Hole}}, req.Options)

	resp := HoleResponse{
		ID:        result.ID,
		Result:    result.Holes[0],
		Calib:     dispersion.Snapshot(),
		CreatedAt: time.Now(),
	}

	// stream shots for interactive animation
	for _, shot := range resp.Result.Shots {
		h.wsHub.BroadcastToTopic(resp.ID.String(), shot)
	}

	logger.WithRound(resp.ID.String()).WithFields(logrus.Fields{
		"strokes": resp.Result.Strokes,
		"par":     resp.Result.Par,
	}).Info("Hole simulation complete")

	c.JSON(http.StatusOK, resp)
}

// SimulateRound resolves a full round
func (h *SimulationHandler) SimulateRound(c *gin.Context) {
	var req RoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}
	if !h.validProfile(req.Skill) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Skill profile must be a numeric handicap or a named tier",
			Code:  "INVALID_SKILL",
		})
		return
	}
	if len(req.Round.Holes) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Round must contain at least one hole",
			Code:  "INVALID_ROUND",
		})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runner := sim.NewRoundRunner(req.Skill, dispersion.Snapshot(), seed)
	result := runner.PlayRound(req.Round, req.Options)

	for _, hole := range result.Holes {
		for _, shot := range hole.Shots {
			h.wsHub.BroadcastToTopic(result.ID.String(), shot)
		}
	}

	logger.WithRound(result.ID.String()).WithFields(logrus.Fields{
		"total_strokes": result.TotalStrokes,
		"total_par":     result.TotalPar,
	}).Info("Round simulation complete")

	c.JSON(http.StatusOK, RoundResponse{
		Result:    result,
		Calib:     dispersion.Snapshot(),
		CreatedAt: time.Now(),
	})
}
