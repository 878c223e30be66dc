package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type AWSConfig struct {
	Region           string `mapstructure:"region"`
	MatchTopicARN    string `mapstructure:"match_topic_arn"`
	DecisionTopicARN string `mapstructure:"decision_topic_arn"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ScoringConfig drives the pairwise scorer. Weights are renormalized at
// score time over the dimensions present in both vectors, so they only
// need to sum to 1.0 when every dimension participates.
type ScoringConfig struct {
	Weights map[string]float64 `mapstructure:"weights"`

	// StrengthThreshold and ConsiderationThreshold bound the tagging bands
	// on per-dimension similarity.
	StrengthThreshold      float64 `mapstructure:"strength_threshold"`
	ConsiderationThreshold float64 `mapstructure:"consideration_threshold"`

	// NeutralDefault is the similarity contributed by a feature missing on
	// either side. Documented mid-range default, never a silent zero.
	NeutralDefault float64 `mapstructure:"neutral_default"`

	// BudgetCeiling normalizes monthly budgets (EUR).
	BudgetCeiling float64 `mapstructure:"budget_ceiling"`

	// VectorCacheTTLSeconds bounds feature-vector staleness in Redis.
	VectorCacheTTLSeconds int `mapstructure:"vector_cache_ttl_seconds"`
}

type FeedConfig struct {
	MaxBatchSize     int `mapstructure:"max_batch_size"`
	DefaultBatchSize int `mapstructure:"default_batch_size"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks the invariants the engine relies on.
func (c *Config) Validate() error {
	if len(c.Scoring.Weights) == 0 {
		return fmt.Errorf("scoring.weights must not be empty")
	}
	total := 0.0
	for dim, w := range c.Scoring.Weights {
		if w < 0 {
			return fmt.Errorf("scoring.weights[%s] must be >= 0", dim)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("scoring.weights must sum to a positive value")
	}
	if c.Scoring.ConsiderationThreshold >= c.Scoring.StrengthThreshold {
		return fmt.Errorf("consideration_threshold must be below strength_threshold")
	}
	if c.Feed.MaxBatchSize <= 0 {
		return fmt.Errorf("feed.max_batch_size must be positive")
	}
	return nil
}
