package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coliving_server/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.InDelta(t, 0.8, cfg.Scoring.StrengthThreshold, 1e-9)
	assert.InDelta(t, 0.4, cfg.Scoring.ConsiderationThreshold, 1e-9)
	assert.InDelta(t, 0.5, cfg.Scoring.NeutralDefault, 1e-9)
	assert.Equal(t, 50, cfg.Feed.MaxBatchSize)
	assert.Equal(t, 10, cfg.Feed.DefaultBatchSize)
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	weights := DefaultWeights()
	require.Len(t, weights, len(models.DimensionOrder))

	total := 0.0
	for _, name := range models.DimensionOrder {
		w, ok := weights[name]
		require.True(t, ok, name)
		total += w
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Scoring: DefaultScoring(),
			Feed:    FeedConfig{MaxBatchSize: 50, DefaultBatchSize: 10},
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Scoring.Weights = nil
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Scoring.Weights[models.DimensionValues] = -0.1
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Scoring.ConsiderationThreshold = 0.9
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Feed.MaxBatchSize = 0
	assert.Error(t, cfg.Validate())
}
