package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fairwaylabs/roundsim/internal/dispersion"
)

const calibrationKey = "roundsim:calibration"

// CalibrationStore persists the calibration multiplier pair as a small
// key-value record. The simulation core never touches storage itself; a
// passing pair is written here once and read back at process start.
type CalibrationStore struct {
	client *redis.Client
}

func NewCalibrationStore(client *redis.Client) *CalibrationStore {
	return &CalibrationStore{client: client}
}

// Load reads the persisted multiplier pair. The second return value reports
// whether a record existed.
func (s *CalibrationStore) Load(ctx context.Context) (dispersion.State, bool, error) {
	raw, err := s.client.Get(ctx, calibrationKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return dispersion.Identity(), false, nil
	}
	if err != nil {
		return dispersion.Identity(), false, fmt.Errorf("loading calibration: %w", err)
	}

	var state dispersion.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return dispersion.Identity(), false, fmt.Errorf("decoding calibration: %w", err)
	}
	return state, true, nil
}

// Save writes the multiplier pair
func (s *CalibrationStore) Save(ctx context.Context, state dispersion.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding calibration: %w", err)
	}
	if err := s.client.Set(ctx, calibrationKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("saving calibration: %w", err)
	}
	return nil
}
