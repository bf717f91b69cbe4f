// Package config defines the lattice generator configuration and how it is read and validated.
package config

import (
	"math"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// MotionModel names the vehicle model the primitives are intended for. It is recorded in the
// output table and does not change generation.
type MotionModel string

// Motion models understood by planners that consume the table.
const (
	MotionModelAckermann MotionModel = "ackermann"
	MotionModelDiff      MotionModel = "diff"
	MotionModelOmni      MotionModel = "omni"
)

// Required attribute keys.
const (
	KeyGridSeparation   = "gridSeparation"
	KeyTurningRadius    = "turningRadius"
	KeyMaxLength        = "maxLength"
	KeyNumberOfHeadings = "numberOfHeadings"
	KeySampleStep       = "sampleStep"
	KeyMotionModel      = "motionModel"
	KeyOutputFile       = "outputFile"
)

// RequiredKeys lists the attributes every configuration must set.
var RequiredKeys = []string{KeyGridSeparation, KeyTurningRadius, KeyMaxLength, KeyNumberOfHeadings}

// defaultSampleStepDivisor sets the sample step used while searching for primitives when none is
// configured, as a fraction of the grid separation.
const defaultSampleStepDivisor = 10

// Config describes the lattice to generate primitives for.
type Config struct {
	// GridSeparation is the spacing between lattice cells.
	GridSeparation float64 `json:"gridSeparation" jsonschema:"required"`
	// TurningRadius is the minimum radius the vehicle can turn at.
	TurningRadius float64 `json:"turningRadius" jsonschema:"required"`
	// MaxLength bounds how far out primitives are searched for.
	MaxLength float64 `json:"maxLength" jsonschema:"required"`
	// NumberOfHeadings must be a positive multiple of 8.
	NumberOfHeadings int `json:"numberOfHeadings" jsonschema:"required"`

	SampleStep  float64     `json:"sampleStep,omitempty"`
	MotionModel MotionModel `json:"motionModel,omitempty" jsonschema:"enum=ackermann,enum=diff,enum=omni"`
	OutputFile  string      `json:"outputFile,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	for _, field := range []struct {
		name  string
		value float64
	}{
		{KeyGridSeparation, conf.GridSeparation},
		{KeyTurningRadius, conf.TurningRadius},
		{KeyMaxLength, conf.MaxLength},
	} {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) || field.value <= 0 {
			return utils.NewConfigValidationError(path, errors.Errorf("%q must be a finite number >0, got %v", field.name, field.value))
		}
	}
	if conf.NumberOfHeadings < 8 || conf.NumberOfHeadings%8 != 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("%q must be a positive multiple of 8, got %d", KeyNumberOfHeadings, conf.NumberOfHeadings))
	}
	if conf.SampleStep < 0 || math.IsNaN(conf.SampleStep) || math.IsInf(conf.SampleStep, 0) {
		return utils.NewConfigValidationError(path, errors.Errorf("%q must be a finite number >=0, got %v", KeySampleStep, conf.SampleStep))
	}
	switch conf.MotionModel {
	case "", MotionModelAckermann, MotionModelDiff, MotionModelOmni:
	default:
		return utils.NewConfigValidationError(path, errors.Errorf("unknown %q %q", KeyMotionModel, conf.MotionModel))
	}
	if conf.MaxLevel() < conf.StartLevel() {
		return utils.NewConfigValidationError(path, NewLevelRangeError(conf.StartLevel(), conf.MaxLevel()))
	}
	return nil
}

// StartLevel is the first ring searched. Below it no curve respecting the turning radius reaches
// a distinct lattice point.
func (conf *Config) StartLevel() int {
	return int(math.Floor(conf.TurningRadius * math.Cos(math.Atan(1./2)-math.Pi/2) / conf.GridSeparation))
}

// MaxLevel is the last ring searched.
func (conf *Config) MaxLevel() int {
	return int(math.Round(conf.MaxLength / conf.GridSeparation))
}

// Step returns the sample step used while searching for primitives.
func (conf *Config) Step() float64 {
	if conf.SampleStep > 0 {
		return conf.SampleStep
	}
	return conf.GridSeparation / defaultSampleStepDivisor
}

// Model returns the configured motion model, defaulting to ackermann.
func (conf *Config) Model() MotionModel {
	if conf.MotionModel == "" {
		return MotionModelAckermann
	}
	return conf.MotionModel
}

// NewLevelRangeError is returned when the maximum length does not reach the first feasible level.
func NewLevelRangeError(start, maxLevel int) error {
	return errors.Errorf("max level %d is below start level %d; increase %q or decrease %q",
		maxLevel, start, KeyMaxLength, KeyTurningRadius)
}

// Schema returns the JSON schema of the configuration file.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
