package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/moonorbit/pkg/lunar"
	"github.com/chrissnell/moonorbit/pkg/orbit"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	defaultFrameInterval = 16 * time.Millisecond
	defaultMaxSessions   = 256
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetControllers() ([]ControllerData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Orbit       orbit.Constants  `json:"orbit" yaml:"orbit"`
	Render      RenderData       `json:"render" yaml:"render"`
	Animation   AnimationData    `json:"animation" yaml:"animation"`
	Controllers []ControllerData `json:"controllers,omitempty" yaml:"controllers,omitempty"`
	Logging     LoggingData      `json:"logging" yaml:"logging"`
}

// RenderData selects how phase angles are reported and silhouettes drawn
type RenderData struct {
	Convention string     `json:"convention" yaml:"convention"` // "new" or "full": the phase at 0°
	Style      string     `json:"style" yaml:"style"`           // "path" or "mask"
	Disk       lunar.Disk `json:"disk" yaml:"disk"`
}

// AnimationData holds playback settings
type AnimationData struct {
	DefaultSpeed  string        `json:"default_speed" yaml:"default_speed"` // preset name or days per tick
	FrameInterval time.Duration `json:"frame_interval" yaml:"frame_interval"`
	SessionTTL    time.Duration `json:"session_ttl" yaml:"session_ttl"`
	MaxSessions   int           `json:"max_sessions" yaml:"max_sessions"`
}

// ControllerData holds the configuration for various controller backends
type ControllerData struct {
	Type       string          `json:"type,omitempty" yaml:"type,omitempty"`
	RESTServer *RESTServerData `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// RESTServerData configures the HTTP API
type RESTServerData struct {
	Cert       string `json:"cert,omitempty" yaml:"cert,omitempty"`
	Key        string `json:"key,omitempty" yaml:"key,omitempty"`
	Port       int    `json:"port,omitempty" yaml:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
}

// LoggingData controls the logger
type LoggingData struct {
	Debug bool   `json:"debug" yaml:"debug"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Default returns a configuration with the reference geometry, slow playback
// and no controllers
func Default() *ConfigData {
	return &ConfigData{
		Orbit: orbit.DefaultConstants(),
		Render: RenderData{
			Convention: "new",
			Style:      "path",
			Disk:       lunar.DefaultDisk(),
		},
		Animation: AnimationData{
			DefaultSpeed:  "slow",
			FrameInterval: defaultFrameInterval,
			SessionTTL:    30 * time.Minute,
			MaxSessions:   defaultMaxSessions,
		},
	}
}

// ApplyDefaults fills zero values from Default
func (c *ConfigData) ApplyDefaults() {
	d := Default()

	if c.Orbit.EarthOrbitRadius == 0 {
		c.Orbit.EarthOrbitRadius = d.Orbit.EarthOrbitRadius
	}
	if c.Orbit.MoonOrbitRadius == 0 {
		c.Orbit.MoonOrbitRadius = d.Orbit.MoonOrbitRadius
	}
	if c.Orbit.EarthYearDays == 0 {
		c.Orbit.EarthYearDays = d.Orbit.EarthYearDays
	}
	if c.Orbit.MoonSynodicDays == 0 {
		c.Orbit.MoonSynodicDays = d.Orbit.MoonSynodicDays
	}
	if c.Orbit.SunSize == 0 {
		c.Orbit.SunSize = d.Orbit.SunSize
	}
	if c.Orbit.EarthSize == 0 {
		c.Orbit.EarthSize = d.Orbit.EarthSize
	}
	if c.Orbit.MoonSize == 0 {
		c.Orbit.MoonSize = d.Orbit.MoonSize
	}

	if c.Render.Convention == "" {
		c.Render.Convention = d.Render.Convention
	}
	if c.Render.Style == "" {
		c.Render.Style = d.Render.Style
	}
	if c.Render.Disk.R == 0 {
		c.Render.Disk = d.Render.Disk
	}

	if c.Animation.DefaultSpeed == "" {
		c.Animation.DefaultSpeed = d.Animation.DefaultSpeed
	}
	if c.Animation.FrameInterval == 0 {
		c.Animation.FrameInterval = d.Animation.FrameInterval
	}
	if c.Animation.MaxSessions == 0 {
		c.Animation.MaxSessions = d.Animation.MaxSessions
	}

	for i := range c.Controllers {
		if rc := c.Controllers[i].RESTServer; rc != nil {
			if rc.ListenAddr == "" {
				rc.ListenAddr = "0.0.0.0"
			}
			if rc.Port == 0 {
				rc.Port = 8080
			}
		}
	}
}

// Validate checks the configuration for values the engine cannot work with
func (c *ConfigData) Validate() error {
	o := c.Orbit
	positive := map[string]float64{
		"orbit.earth_orbit_radius": o.EarthOrbitRadius,
		"orbit.moon_orbit_radius":  o.MoonOrbitRadius,
		"orbit.earth_year_days":    o.EarthYearDays,
		"orbit.moon_synodic_days":  o.MoonSynodicDays,
		"render.disk.r":            c.Render.Disk.R,
	}
	for name, v := range positive {
		if !(v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, name, v)
		}
	}

	if _, err := lunar.ParseConvention(c.Render.Convention); err != nil {
		return fmt.Errorf("%w: render.convention: %v", ErrInvalidConfig, err)
	}
	if _, err := lunar.ParseStyle(c.Render.Style); err != nil {
		return fmt.Errorf("%w: render.style: %v", ErrInvalidConfig, err)
	}
	if _, err := orbit.ParseSpeed(c.Animation.DefaultSpeed); err != nil {
		return fmt.Errorf("%w: animation.default_speed: %v", ErrInvalidConfig, err)
	}
	if c.Animation.FrameInterval < 0 || c.Animation.SessionTTL < 0 {
		return fmt.Errorf("%w: animation durations must not be negative", ErrInvalidConfig)
	}
	if c.Animation.MaxSessions < 0 {
		return fmt.Errorf("%w: animation.max_sessions must not be negative", ErrInvalidConfig)
	}

	for i, cc := range c.Controllers {
		switch cc.Type {
		case "rest", "restserver":
			if cc.RESTServer == nil {
				return fmt.Errorf("%w: controller %d: rest section missing", ErrInvalidConfig, i)
			}
			if cc.RESTServer.Port < 0 || cc.RESTServer.Port > 65535 {
				return fmt.Errorf("%w: controller %d: port %d out of range", ErrInvalidConfig, i, cc.RESTServer.Port)
			}
			if (cc.RESTServer.Cert == "") != (cc.RESTServer.Key == "") {
				return fmt.Errorf("%w: controller %d: cert and key must be set together", ErrInvalidConfig, i)
			}
		default:
			return fmt.Errorf("%w: controller %d: unknown type %q", ErrInvalidConfig, i, cc.Type)
		}
	}
	return nil
}

// Convention returns the parsed render convention
func (c *ConfigData) Convention() lunar.Convention {
	conv, _ := lunar.ParseConvention(c.Render.Convention)
	return conv
}

// Style returns the parsed silhouette style
func (c *ConfigData) Style() lunar.Style {
	s, _ := lunar.ParseStyle(c.Render.Style)
	return s
}

// Speed returns the parsed default speed
func (c *ConfigData) Speed() float64 {
	v, err := orbit.ParseSpeed(c.Animation.DefaultSpeed)
	if err != nil {
		return orbit.SpeedSlow
	}
	return v
}
