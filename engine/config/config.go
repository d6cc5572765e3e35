package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/Carmen-Shannon/oxy-gesture/engine"
	"github.com/Carmen-Shannon/oxy-gesture/engine/camera"
	"gopkg.in/yaml.v3"
)

// ControllerConfig holds the momentum tuning of a camera.CameraController.
type ControllerConfig struct {
	DampingTranslate        float64 `yaml:"damping_translate"`
	DampingZoom             float64 `yaml:"damping_zoom"`
	ThresholdStartTranslate float64 `yaml:"threshold_start_translate"`
	ThresholdStartZoom      float64 `yaml:"threshold_start_zoom"`
	ThresholdStopTranslate  float64 `yaml:"threshold_stop_translate"`
	ThresholdStopZoom       float64 `yaml:"threshold_stop_zoom"`
	FlingSampleInterval     float64 `yaml:"fling_sample_interval"`
	ExactDecay              bool    `yaml:"exact_decay"`
}

// CameraConfig holds the initial state and limits of a camera.Camera.
type CameraConfig struct {
	Zoom          float64 `yaml:"zoom"`
	Pitch         float64 `yaml:"pitch"`
	Roll          float64 `yaml:"roll"`
	MinZoom       float64 `yaml:"min_zoom"`
	MaxZoom       float64 `yaml:"max_zoom"`
	MaxPitch      float64 `yaml:"max_pitch"`
	FovDegrees    float64 `yaml:"fov_degrees"`
	PixelsPerTile float64 `yaml:"pixels_per_tile"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
}

// EngineConfig holds the loop settings of an engine.Engine.
type EngineConfig struct {
	TickRate         float64 `yaml:"tick_rate"`
	RenderFrameLimit float64 `yaml:"render_frame_limit"`
	Profiling        bool    `yaml:"profiling"`
}

// Config is the YAML tuning file shared by the demo and the sweep tool.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Camera     CameraConfig     `yaml:"camera"`
	Engine     EngineConfig     `yaml:"engine"`
}

// Default returns the configuration matching the constructors' own defaults.
//
// Returns:
//   - *Config: a new default configuration
func Default() *Config {
	return &Config{
		Controller: ControllerConfig{
			DampingTranslate:        4,
			DampingZoom:             6,
			ThresholdStartTranslate: 16,
			ThresholdStartZoom:      1,
			ThresholdStopTranslate:  2,
			ThresholdStopZoom:       0.3,
			FlingSampleInterval:     0.0167,
		},
		Camera: CameraConfig{
			MinZoom:       0,
			MaxZoom:       20.5,
			MaxPitch:      1,
			FovDegrees:    45,
			PixelsPerTile: 256,
			Width:         1280,
			Height:        720,
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
	}
}

// Load reads and validates a YAML config file.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - *Config: the parsed configuration
//   - error: read, parse or validation error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	common.Logger().Debug("config loaded", "path", path)
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Keys missing from the document keep their default value; unknown keys are rejected.
// Zero values for the sample interval, field of view, tile size, viewport and tick rate
// mean "use the default".
//
// Parameters:
//   - data: YAML document, possibly empty
//
// Returns:
//   - *Config: the parsed configuration
//   - error: parse or validation error
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
//
// Returns:
//   - []byte: YAML document
//   - error: encoding error
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) fillDefaults() {
	d := Default()
	c.Controller.FlingSampleInterval = common.Coalesce(c.Controller.FlingSampleInterval, d.Controller.FlingSampleInterval)
	c.Camera.FovDegrees = common.Coalesce(c.Camera.FovDegrees, d.Camera.FovDegrees)
	c.Camera.PixelsPerTile = common.Coalesce(c.Camera.PixelsPerTile, d.Camera.PixelsPerTile)
	c.Camera.Width = common.Coalesce(c.Camera.Width, d.Camera.Width)
	c.Camera.Height = common.Coalesce(c.Camera.Height, d.Camera.Height)
	c.Engine.TickRate = common.Coalesce(c.Engine.TickRate, d.Engine.TickRate)
}

// Validate reports every inconsistent setting.
//
// Returns:
//   - error: all problems joined, or nil
func (c *Config) Validate() error {
	var errs []error
	check := func(bad bool, format string, args ...any) {
		if bad {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	ctl := c.Controller
	check(ctl.DampingTranslate < 0, "controller.damping_translate must not be negative, got %g", ctl.DampingTranslate)
	check(ctl.DampingZoom < 0, "controller.damping_zoom must not be negative, got %g", ctl.DampingZoom)
	check(ctl.ThresholdStopTranslate < 0, "controller.threshold_stop_translate must not be negative, got %g", ctl.ThresholdStopTranslate)
	check(ctl.ThresholdStopZoom < 0, "controller.threshold_stop_zoom must not be negative, got %g", ctl.ThresholdStopZoom)
	check(ctl.ThresholdStopTranslate > ctl.ThresholdStartTranslate,
		"controller.threshold_stop_translate (%g) exceeds threshold_start_translate (%g)", ctl.ThresholdStopTranslate, ctl.ThresholdStartTranslate)
	check(ctl.ThresholdStopZoom > ctl.ThresholdStartZoom,
		"controller.threshold_stop_zoom (%g) exceeds threshold_start_zoom (%g)", ctl.ThresholdStopZoom, ctl.ThresholdStartZoom)
	check(ctl.FlingSampleInterval <= 0, "controller.fling_sample_interval must be positive, got %g", ctl.FlingSampleInterval)

	cam := c.Camera
	check(cam.MinZoom > cam.MaxZoom, "camera.min_zoom (%g) exceeds max_zoom (%g)", cam.MinZoom, cam.MaxZoom)
	check(cam.MaxPitch < 0 || cam.MaxPitch >= math.Pi/2, "camera.max_pitch must be in [0, π/2), got %g", cam.MaxPitch)
	check(cam.FovDegrees <= 0 || cam.FovDegrees >= 180, "camera.fov_degrees must be in (0, 180), got %g", cam.FovDegrees)
	check(cam.PixelsPerTile <= 0, "camera.pixels_per_tile must be positive, got %g", cam.PixelsPerTile)
	check(cam.Width <= 0 || cam.Height <= 0, "camera viewport must be positive, got %gx%g", cam.Width, cam.Height)

	eng := c.Engine
	check(eng.TickRate < 0, "engine.tick_rate must not be negative, got %g", eng.TickRate)
	check(eng.RenderFrameLimit < 0, "engine.render_frame_limit must not be negative, got %g", eng.RenderFrameLimit)

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ControllerOptions converts the controller section to functional options.
//
// Returns:
//   - []camera.CameraControllerOption: options for camera.NewCameraController
func (c *Config) ControllerOptions() []camera.CameraControllerOption {
	ctl := c.Controller
	return []camera.CameraControllerOption{
		camera.WithDamping(ctl.DampingTranslate, ctl.DampingZoom),
		camera.WithStartThresholds(ctl.ThresholdStartTranslate, ctl.ThresholdStartZoom),
		camera.WithStopThresholds(ctl.ThresholdStopTranslate, ctl.ThresholdStopZoom),
		camera.WithFlingSampleInterval(ctl.FlingSampleInterval),
		camera.WithExactDecay(ctl.ExactDecay),
	}
}

// CameraOptions converts the camera section to functional options.
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c *Config) CameraOptions() []camera.CameraBuilderOption {
	cam := c.Camera
	return []camera.CameraBuilderOption{
		camera.WithZoomBounds(cam.MinZoom, cam.MaxZoom),
		camera.WithMaxPitch(cam.MaxPitch),
		camera.WithZoom(cam.Zoom),
		camera.WithPitch(cam.Pitch),
		camera.WithRoll(cam.Roll),
		camera.WithFov(cam.FovDegrees * math.Pi / 180),
		camera.WithPixelsPerTile(cam.PixelsPerTile),
		camera.WithViewport(cam.Width, cam.Height),
	}
}

// EngineOptions converts the engine section to functional options.
//
// Returns:
//   - []engine.EngineBuilderOption: options for engine.NewEngine
func (c *Config) EngineOptions() []engine.EngineBuilderOption {
	eng := c.Engine
	return []engine.EngineBuilderOption{
		engine.WithTickRate(eng.TickRate),
		engine.WithRenderFrameLimit(eng.RenderFrameLimit),
		engine.WithProfiling(eng.Profiling),
	}
}
