package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, EnvDevelopment, cfg.Env)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, uint64(0), cfg.Scheduler.Seed)
		assert.Equal(t, 0.985, cfg.Scheduler.DecayFactor)
		assert.Equal(t, 10000, cfg.Scheduler.MaxDrawAttempts)
		assert.Equal(t, 1000, cfg.Scheduler.MaxElectiveAttempts)
		assert.False(t, cfg.Scheduler.ElectiveSuppression)
		assert.False(t, cfg.Scheduler.EnforceProhibit)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("SCHEDULER_SEED", "42")
		t.Setenv("SCHEDULER_ENFORCE_PROHIBIT", "true")
		t.Setenv("LOG_FORMAT", "json")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, uint64(42), cfg.Scheduler.Seed)
		assert.True(t, cfg.Scheduler.EnforceProhibit)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("Dotenv file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		require.NoError(t, os.WriteFile(".env", []byte("SCHEDULER_MAX_DRAW_ATTEMPTS=7\nSCHEDULER_DECAY_FACTOR=0.5\n"), 0666))
		t.Cleanup(func() {
			os.Unsetenv("SCHEDULER_MAX_DRAW_ATTEMPTS")
			os.Unsetenv("SCHEDULER_DECAY_FACTOR")
		})

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Scheduler.MaxDrawAttempts)
		assert.Equal(t, 0.5, cfg.Scheduler.DecayFactor)
	})
}
