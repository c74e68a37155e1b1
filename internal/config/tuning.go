package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default vehicle and track constants. The Get* accessors fall back to
// these when the corresponding JSON field is absent.
const (
	// DefaultGravity is gravitational acceleration in m/s².
	DefaultGravity = 9.81
	// DefaultFrictionCoefficient is the combined tire/surface grip coefficient.
	DefaultFrictionCoefficient = 1.1
	// DefaultMaxVelocity is the global speed cap in m/s.
	DefaultMaxVelocity = 30.0
	// DefaultMaxAcceleration is the traction-limited forward acceleration in m/s².
	DefaultMaxAcceleration = 6.0
	// DefaultMaxBraking is the braking deceleration limit in m/s².
	DefaultMaxBraking = 10.0
	// DefaultMaxTrackWidth is the maximum accepted left/right cone pairing
	// distance in meters. Pairs wider than this are treated as spurious.
	DefaultMaxTrackWidth = 7.0
	// DefaultMinPointSpacing is the minimum distance between accepted
	// centerline midpoints in meters.
	DefaultMinPointSpacing = 1.0
	// DefaultSolverIterations is the outer iteration budget for the
	// friction-circle velocity solver.
	DefaultSolverIterations = 4
)

// TuningConfig represents the root configuration for trajectory tuning
// parameters. The schema matches the /api/params endpoint so the same JSON
// can be used for both startup configuration and runtime updates. All
// fields are optional; partial configs are safe.
type TuningConfig struct {
	// Vehicle dynamics params
	Gravity             *float64 `json:"gravity,omitempty"`
	FrictionCoefficient *float64 `json:"friction_coefficient,omitempty"`
	MaxVelocity         *float64 `json:"max_velocity,omitempty"`
	MaxAcceleration     *float64 `json:"max_acceleration,omitempty"`
	MaxBraking          *float64 `json:"max_braking,omitempty"`

	// Centerline construction params
	MaxTrackWidth   *float64 `json:"max_track_width,omitempty"`
	MinPointSpacing *float64 `json:"min_point_spacing,omitempty"`

	// Velocity solver params
	SolverIterations *int `json:"solver_iterations,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size. Fields omitted from the JSON file retain their default
// values, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.Gravity != nil && *c.Gravity <= 0 {
		return fmt.Errorf("gravity must be positive, got %f", *c.Gravity)
	}
	if c.FrictionCoefficient != nil && *c.FrictionCoefficient <= 0 {
		return fmt.Errorf("friction_coefficient must be positive, got %f", *c.FrictionCoefficient)
	}
	if c.MaxVelocity != nil && *c.MaxVelocity <= 0 {
		return fmt.Errorf("max_velocity must be positive, got %f", *c.MaxVelocity)
	}
	if c.MaxAcceleration != nil && *c.MaxAcceleration <= 0 {
		return fmt.Errorf("max_acceleration must be positive, got %f", *c.MaxAcceleration)
	}
	if c.MaxBraking != nil && *c.MaxBraking <= 0 {
		return fmt.Errorf("max_braking must be positive, got %f", *c.MaxBraking)
	}
	if c.MaxTrackWidth != nil && *c.MaxTrackWidth <= 0 {
		return fmt.Errorf("max_track_width must be positive, got %f", *c.MaxTrackWidth)
	}
	if c.MinPointSpacing != nil && *c.MinPointSpacing < 0 {
		return fmt.Errorf("min_point_spacing must be non-negative, got %f", *c.MinPointSpacing)
	}
	if c.SolverIterations != nil && *c.SolverIterations < 1 {
		return fmt.Errorf("solver_iterations must be at least 1, got %d", *c.SolverIterations)
	}
	return nil
}

// GetGravity returns the gravity value or the default.
func (c *TuningConfig) GetGravity() float64 {
	if c.Gravity == nil {
		return DefaultGravity
	}
	return *c.Gravity
}

// GetFrictionCoefficient returns the friction_coefficient value or the default.
func (c *TuningConfig) GetFrictionCoefficient() float64 {
	if c.FrictionCoefficient == nil {
		return DefaultFrictionCoefficient
	}
	return *c.FrictionCoefficient
}

// GetMaxVelocity returns the max_velocity value or the default.
func (c *TuningConfig) GetMaxVelocity() float64 {
	if c.MaxVelocity == nil {
		return DefaultMaxVelocity
	}
	return *c.MaxVelocity
}

// GetMaxAcceleration returns the max_acceleration value or the default.
func (c *TuningConfig) GetMaxAcceleration() float64 {
	if c.MaxAcceleration == nil {
		return DefaultMaxAcceleration
	}
	return *c.MaxAcceleration
}

// GetMaxBraking returns the max_braking value or the default.
func (c *TuningConfig) GetMaxBraking() float64 {
	if c.MaxBraking == nil {
		return DefaultMaxBraking
	}
	return *c.MaxBraking
}

// GetMaxTrackWidth returns the max_track_width value or the default.
func (c *TuningConfig) GetMaxTrackWidth() float64 {
	if c.MaxTrackWidth == nil {
		return DefaultMaxTrackWidth
	}
	return *c.MaxTrackWidth
}

// GetMinPointSpacing returns the min_point_spacing value or the default.
func (c *TuningConfig) GetMinPointSpacing() float64 {
	if c.MinPointSpacing == nil {
		return DefaultMinPointSpacing
	}
	return *c.MinPointSpacing
}

// GetSolverIterations returns the solver_iterations value or the default.
// Four iterations is an empirical budget that converges on every track in
// the fixture set; it is exposed as a tunable rather than a contract.
func (c *TuningConfig) GetSolverIterations() int {
	if c.SolverIterations == nil {
		return DefaultSolverIterations
	}
	return *c.SolverIterations
}
