package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger_LevelSelection(t *testing.T) {
	log := InitLogger("warn", true)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log = InitLogger("not-a-level", true)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestContextHelpers(t *testing.T) {
	InitLogger("info", true)

	entry := WithService("roundsim")
	assert.Equal(t, "roundsim", entry.Data["service"])

	entry = WithRound("abc-123")
	assert.Equal(t, "abc-123", entry.Data["round_id"])

	entry = WithCalibration(3, 1.15, 1.05)
	assert.Equal(t, 3, entry.Data["attempt"])
	assert.Equal(t, 1.15, entry.Data["dispersion_scale"])
	assert.Equal(t, 1.05, entry.Data["chip_scale"])
}
