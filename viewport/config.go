// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewport

import (
	"errors"
	"fmt"
	"io/ioutil"
	"math"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid viewport configuration")

// AxisConfig configures one axis of a Viewport.
type AxisConfig struct {
	// Pixels is the length of the axis on screen.
	Pixels float64 `yaml:"pixels"`

	// UnitSize is the number of pixels one sample needs: 1 for a
	// column per pixel, the row height for a list of rows.
	UnitSize float64 `yaml:"unitSize"`

	// MaxScale and MinSpan bound zooming in. See ExtentPolicy.
	MaxScale float64 `yaml:"maxScale"`
	MinSpan  float64 `yaml:"minSpan"`

	// Coalescing windows. 0 means the DefaultDelays value.
	ContinuousDelay time.Duration `yaml:"continuousDelay"`
	DiscreteDelay   time.Duration `yaml:"discreteDelay"`
}

// Budget returns the number of samples that fit on the axis.
func (c AxisConfig) Budget() int {
	if c.UnitSize <= 0 {
		return 0
	}
	return int(math.Floor(c.Pixels / c.UnitSize))
}

// Policy returns the axis's zoom bounds.
func (c AxisConfig) Policy() ExtentPolicy {
	return ExtentPolicy{MaxScale: c.MaxScale, MinSpan: c.MinSpan}
}

// Delays returns the axis's coalescing windows.
func (c AxisConfig) Delays() Delays {
	return Delays{Continuous: c.ContinuousDelay, Discrete: c.DiscreteDelay}
}

// Validate checks c for errors that would make the axis unusable.
func (c AxisConfig) Validate() error {
	if c.Pixels <= 0 {
		return fmt.Errorf("%w: pixels %g must be positive", ErrInvalidConfig, c.Pixels)
	}
	if b := c.Budget(); b <= 0 {
		return fmt.Errorf("%w: budget %d (pixels %g / unit size %g) must be positive", ErrInvalidConfig, b, c.Pixels, c.UnitSize)
	}
	if c.MaxScale < 0 || c.MaxScale > 0 && c.MaxScale < 1 {
		return fmt.Errorf("%w: max scale %g leaves an empty scale extent [1, %g]", ErrInvalidConfig, c.MaxScale, c.MaxScale)
	}
	if c.MinSpan < 0 {
		return fmt.Errorf("%w: min span %g is negative", ErrInvalidConfig, c.MinSpan)
	}
	if c.ContinuousDelay < 0 || c.DiscreteDelay < 0 {
		return fmt.Errorf("%w: negative delay", ErrInvalidConfig)
	}
	return nil
}

// Config configures a Viewport: a horizontal time axis and a vertical
// rank axis.
type Config struct {
	X AxisConfig `yaml:"x"`
	Y AxisConfig `yaml:"y"`
}

// DefaultConfig is a 600x550 viewport with one column per pixel and
// 7 pixel rows.
func DefaultConfig() Config {
	return Config{
		X: AxisConfig{
			Pixels:          600,
			UnitSize:        1,
			MaxScale:        40,
			ContinuousDelay: DefaultDelays.Continuous,
			DiscreteDelay:   DefaultDelays.Discrete,
		},
		Y: AxisConfig{
			Pixels:          550,
			UnitSize:        7,
			MaxScale:        7 * 16,
			ContinuousDelay: DefaultDelays.Continuous,
			DiscreteDelay:   DefaultDelays.Discrete,
		},
	}
}

func (c Config) Validate() error {
	if err := c.X.Validate(); err != nil {
		return fmt.Errorf("x axis: %w", err)
	}
	if err := c.Y.Validate(); err != nil {
		return fmt.Errorf("y axis: %w", err)
	}
	return nil
}

// ParseConfig parses a YAML configuration. Missing fields keep their
// DefaultConfig values.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing viewport config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
