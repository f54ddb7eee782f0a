package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Log       LogConfig
	Scheduler SchedulerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig holds the runtime knobs of the allocation engine
type SchedulerConfig struct {
	Seed                uint64 // 0 picks a time-based seed
	DecayFactor         float64
	MaxDrawAttempts     int
	MaxElectiveAttempts int
	ElectiveSuppression bool
	EnforceProhibit     bool
}

// Load reads the environment, optionally seeded from a .env file in the working directory
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		Seed:                v.GetUint64("SCHEDULER_SEED"),
		DecayFactor:         v.GetFloat64("SCHEDULER_DECAY_FACTOR"),
		MaxDrawAttempts:     v.GetInt("SCHEDULER_MAX_DRAW_ATTEMPTS"),
		MaxElectiveAttempts: v.GetInt("SCHEDULER_MAX_ELECTIVE_ATTEMPTS"),
		ElectiveSuppression: v.GetBool("SCHEDULER_ELECTIVE_SUPPRESSION"),
		EnforceProhibit:     v.GetBool("SCHEDULER_ENFORCE_PROHIBIT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SCHEDULER_SEED", 0)
	v.SetDefault("SCHEDULER_DECAY_FACTOR", 0.985)
	v.SetDefault("SCHEDULER_MAX_DRAW_ATTEMPTS", 10000)
	v.SetDefault("SCHEDULER_MAX_ELECTIVE_ATTEMPTS", 1000)
	v.SetDefault("SCHEDULER_ELECTIVE_SUPPRESSION", false)
	v.SetDefault("SCHEDULER_ENFORCE_PROHIBIT", false)
}
