package dispersion

import "sync"

// State is the global calibration multiplier pair. It is tuned by the
// calibration loop between batches and read by every shot in the next batch.
type State struct {
	DispersionScale     float64 `json:"dispersion_scale"`
	ChipMultiplierScale float64 `json:"chip_multiplier_scale"`
}

// Identity is the uncalibrated state a process starts with
func Identity() State {
	return State{DispersionScale: 1.0, ChipMultiplierScale: 1.0}
}

var (
	stateMu sync.RWMutex
	current = Identity()
)

// Snapshot returns an immutable copy of the calibration state. Batch workers
// take one copy at batch start so concurrent rounds never observe a write.
func Snapshot() State {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return current
}

// SetState replaces the calibration state. Called only between batches.
func SetState(s State) {
	stateMu.Lock()
	defer stateMu.Unlock()
	current = s
}
