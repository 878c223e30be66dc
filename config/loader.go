package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"coliving_server/models"
)

// Load reads configuration from configs/config.yaml (optional) with
// environment-variable overrides, and applies the documented defaults.
func Load() (*Config, error) {
	// .env is optional; environment wins either way.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "coliving-matching")
	v.SetDefault("app.environment", "development")
	v.SetDefault("server.port", "8080")
	v.SetDefault("aws.region", "eu-west-1")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("scoring.weights", DefaultWeights())
	v.SetDefault("scoring.strength_threshold", 0.8)
	v.SetDefault("scoring.consideration_threshold", 0.4)
	v.SetDefault("scoring.neutral_default", 0.5)
	v.SetDefault("scoring.budget_ceiling", 2000.0)
	v.SetDefault("scoring.vector_cache_ttl_seconds", 300)

	v.SetDefault("feed.max_batch_size", 50)
	v.SetDefault("feed.default_batch_size", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// DefaultWeights is the stock weight set; it sums to 1.0 across the five
// dimensions and is renormalized when a dimension is excluded.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		models.DimensionBudgetLocation: 0.30,
		models.DimensionLifestyle:      0.20,
		models.DimensionSocial:         0.15,
		models.DimensionPractical:      0.15,
		models.DimensionValues:         0.20,
	}
}

// DefaultScoring returns a ScoringConfig with stock values, used by tests
// and local tooling that bypass Load.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		Weights:                DefaultWeights(),
		StrengthThreshold:      0.8,
		ConsiderationThreshold: 0.4,
		NeutralDefault:         0.5,
		BudgetCeiling:          2000.0,
		VectorCacheTTLSeconds:  300,
	}
}
