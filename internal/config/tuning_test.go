package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTuningConfig(t *testing.T) {
	t.Parallel()

	t.Run("loads a full config", func(t *testing.T) {
		t.Parallel()
		path := writeTempConfig(t, "tuning.json", `{
			"gravity": 9.80,
			"friction_coefficient": 1.3,
			"max_velocity": 25,
			"max_acceleration": 5,
			"max_braking": 9,
			"max_track_width": 6,
			"min_point_spacing": 0.5,
			"solver_iterations": 6
		}`)
		cfg, err := LoadTuningConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 9.80, cfg.GetGravity())
		assert.Equal(t, 1.3, cfg.GetFrictionCoefficient())
		assert.Equal(t, 25.0, cfg.GetMaxVelocity())
		assert.Equal(t, 5.0, cfg.GetMaxAcceleration())
		assert.Equal(t, 9.0, cfg.GetMaxBraking())
		assert.Equal(t, 6.0, cfg.GetMaxTrackWidth())
		assert.Equal(t, 0.5, cfg.GetMinPointSpacing())
		assert.Equal(t, 6, cfg.GetSolverIterations())
	})

	t.Run("partial config falls back to defaults", func(t *testing.T) {
		t.Parallel()
		path := writeTempConfig(t, "partial.json", `{"max_velocity": 20}`)
		cfg, err := LoadTuningConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 20.0, cfg.GetMaxVelocity())
		assert.Equal(t, DefaultGravity, cfg.GetGravity())
		assert.Equal(t, DefaultFrictionCoefficient, cfg.GetFrictionCoefficient())
		assert.Equal(t, DefaultMaxTrackWidth, cfg.GetMaxTrackWidth())
		assert.Equal(t, DefaultSolverIterations, cfg.GetSolverIterations())
	})

	t.Run("rejects non-json extension", func(t *testing.T) {
		t.Parallel()
		path := writeTempConfig(t, "tuning.yaml", `{}`)
		_, err := LoadTuningConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".json extension")
	})

	t.Run("rejects missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()
		path := writeTempConfig(t, "broken.json", `{"gravity": `)
		_, err := LoadTuningConfig(path)
		assert.Error(t, err)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()
		path := writeTempConfig(t, "invalid.json", `{"friction_coefficient": -1}`)
		_, err := LoadTuningConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "friction_coefficient")
	})
}

func TestTuningConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("empty config is valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, EmptyTuningConfig().Validate())
	})

	t.Run("rejects out-of-range fields", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			name string
			cfg  TuningConfig
		}{
			{"zero gravity", TuningConfig{Gravity: ptrFloat64(0)}},
			{"negative friction", TuningConfig{FrictionCoefficient: ptrFloat64(-0.5)}},
			{"zero max velocity", TuningConfig{MaxVelocity: ptrFloat64(0)}},
			{"negative braking", TuningConfig{MaxBraking: ptrFloat64(-2)}},
			{"zero track width", TuningConfig{MaxTrackWidth: ptrFloat64(0)}},
			{"negative spacing", TuningConfig{MinPointSpacing: ptrFloat64(-1)}},
			{"zero solver iterations", TuningConfig{SolverIterations: ptrInt(0)}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				assert.Error(t, tc.cfg.Validate())
			})
		}
	})

	t.Run("zero point spacing is allowed", func(t *testing.T) {
		t.Parallel()
		cfg := TuningConfig{MinPointSpacing: ptrFloat64(0)}
		assert.NoError(t, cfg.Validate())
	})
}
