package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger    `mapstructure:"logger"`
	Simulator Simulator `mapstructure:"simulator"`
	Sizing    Sizing    `mapstructure:"sizing"`
	Sweep     Sweep     `mapstructure:"sweep"`
	Store     Store     `mapstructure:"store"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Simulator struct {
	Workers         int    `mapstructure:"workers"`
	TradesPerDay    int    `mapstructure:"trades_per_day"`
	BaseSeed        uint64 `mapstructure:"base_seed"`
	SimulationCount int    `mapstructure:"simulation_count"`
}

type Sizing struct {
	KellyMultiplier float64 `mapstructure:"kelly_multiplier"`
	MaxIterations   int     `mapstructure:"max_iterations"`
	Tolerance       float64 `mapstructure:"tolerance"`
	// Kelly fractions above this are flagged as aggressive in reports.
	AggressiveKellyThreshold float64 `mapstructure:"aggressive_kelly_threshold"`
}

type Sweep struct {
	RiskFractions []float64 `mapstructure:"risk_fractions"`
}

type Store struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	// A config file is optional; defaults plus env cover the whole surface.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")

	viper.SetDefault("simulator.workers", 0) // 0 = GOMAXPROCS
	viper.SetDefault("simulator.trades_per_day", 1)
	viper.SetDefault("simulator.base_seed", 1)
	viper.SetDefault("simulator.simulation_count", 1000)

	viper.SetDefault("sizing.kelly_multiplier", 0.5)
	viper.SetDefault("sizing.max_iterations", 1000)
	viper.SetDefault("sizing.tolerance", 1e-6)
	viper.SetDefault("sizing.aggressive_kelly_threshold", 0.1)

	viper.SetDefault("sweep.risk_fractions", []float64{0.001, 0.002, 0.005, 0.01, 0.015, 0.02})

	viper.SetDefault("store.default_expiration", time.Hour)
	viper.SetDefault("store.cleanup_interval", 10*time.Minute)
}
