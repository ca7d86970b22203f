// Package config loads twincam settings with viper: built-in defaults,
// an optional YAML or JSON file, TWINCAM_* environment variables and
// bound command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ansipixels/twincam/alert"
	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix.
const EnvPrefix = "TWINCAM"

// Settings is the decoded configuration.
type Settings struct {
	LogLevel         string `mapstructure:"logLevel"`
	LogFile          string `mapstructure:"logFile"`
	FPS              int    `mapstructure:"fps"`
	InitialViewpoint string `mapstructure:"initialViewpoint"`
	DevCapture       bool   `mapstructure:"devCapture"`
	FlyToAlerts      bool   `mapstructure:"flyToAlerts"`
	AlertKey         string `mapstructure:"alertKey"`

	Tour struct {
		Enabled  bool          `mapstructure:"enabled"`
		Interval time.Duration `mapstructure:"interval"`
	} `mapstructure:"tour"`

	Flight struct {
		Duration      float64 `mapstructure:"duration"`
		PointDuration float64 `mapstructure:"pointDuration"`
		PointDistance float64 `mapstructure:"pointDistance"`
	} `mapstructure:"flight"`

	Alert struct {
		Frequency float64 `mapstructure:"frequency"`
	} `mapstructure:"alert"`

	Viewpoints []ViewpointEntry    `mapstructure:"viewpoints"`
	Alerts     map[string][]string `mapstructure:"alerts"`
}

// ViewpointEntry is the file form of a viewpoint.
type ViewpointEntry struct {
	ID          string    `mapstructure:"id" yaml:"id"`
	Name        string    `mapstructure:"name" yaml:"name"`
	Description string    `mapstructure:"description" yaml:"description,omitempty"`
	Icon        string    `mapstructure:"icon" yaml:"icon,omitempty"`
	Position    []float64 `mapstructure:"position" yaml:"position,flow"`
	Target      []float64 `mapstructure:"target" yaml:"target,flow"`
	Hotspot     []float64 `mapstructure:"hotspot" yaml:"hotspot,flow,omitempty"`
	Category    string    `mapstructure:"category" yaml:"category,omitempty"`
}

// ErrBadVector is returned for coordinates that are not three numbers.
var ErrBadVector = errors.New("expected [x, y, z]")

// New returns a viper instance with every default set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("fps", 30)
	v.SetDefault("initialViewpoint", "")
	v.SetDefault("devCapture", false)
	v.SetDefault("flyToAlerts", true)
	v.SetDefault("alertKey", "")

	v.SetDefault("tour.enabled", false)
	v.SetDefault("tour.interval", "8s")

	v.SetDefault("flight.duration", 1.6)
	v.SetDefault("flight.pointDuration", 1.2)
	v.SetDefault("flight.pointDistance", 6.0)

	v.SetDefault("alert.frequency", alert.DefaultFrequency)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v. With an explicit path the file must
// exist; otherwise twincam.{yaml,json} is looked up in the working
// directory and $HOME/.config/twincam, and its absence is not an error.
func Load(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("twincam")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/twincam")
	}
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if path == "" && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("error reading config file: %w", err)
}

// ErrBadInterval is returned for tour intervals that are not a duration,
// or that are shorter than MinInterval.
var ErrBadInterval = errors.New("invalid interval")

// MinInterval is the shortest accepted tour interval.
const MinInterval = time.Millisecond

// ParseInterval reads a tour interval. Strings with a unit ("8s", "1m30s")
// parse as durations; bare numbers, typed or quoted, are seconds. Zero
// disables the tour.
func ParseInterval(raw any) (time.Duration, error) {
	var d time.Duration
	switch x := raw.(type) {
	case nil:
		return 0, nil
	case time.Duration:
		d = x
	case string:
		x = strings.TrimSpace(x)
		if parsed, err := time.ParseDuration(x); err == nil {
			d = parsed
			break
		}
		secs, err := cast.ToFloat64E(x)
		if err != nil {
			return 0, fmt.Errorf("%w %q", ErrBadInterval, x)
		}
		d = time.Duration(secs * float64(time.Second))
	default:
		secs, err := cast.ToFloat64E(x)
		if err != nil {
			return 0, fmt.Errorf("%w %v", ErrBadInterval, x)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d != 0 && d < MinInterval {
		return 0, fmt.Errorf("%w %v: below %v", ErrBadInterval, d, MinInterval)
	}
	return d, nil
}

// Decode unmarshals v into Settings.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	interval, err := ParseInterval(v.Get("tour.interval"))
	if err != nil {
		return s, fmt.Errorf("error decoding config: tour.interval: %w", err)
	}
	// Normalised so the duration decode hook never sees a bare number.
	v.Set("tour.interval", interval.String())
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("error decoding config: %w", err)
	}
	return s, nil
}

// Catalog builds the viewpoint catalog, the built-in one when the
// configuration has none.
func (s Settings) Catalog() (*viewpoint.Catalog, error) {
	if len(s.Viewpoints) == 0 {
		return viewpoint.Default(), nil
	}
	vs := make([]viewpoint.Viewpoint, 0, len(s.Viewpoints))
	for i, e := range s.Viewpoints {
		vp, err := e.Viewpoint()
		if err != nil {
			return nil, fmt.Errorf("viewpoints[%d]: %w", i, err)
		}
		vs = append(vs, vp)
	}
	return viewpoint.NewCatalog(vs...)
}

// AlertTable returns the configured alert table, or the built-in one.
func (s Settings) AlertTable() alert.Table {
	if len(s.Alerts) == 0 {
		return alert.DefaultTable()
	}
	return alert.Table(s.Alerts)
}

// Viewpoint converts the entry.
func (e ViewpointEntry) Viewpoint() (viewpoint.Viewpoint, error) {
	pos, err := vec(e.Position)
	if err != nil {
		return viewpoint.Viewpoint{}, fmt.Errorf("%q position: %w", e.ID, err)
	}
	target, err := vec(e.Target)
	if err != nil {
		return viewpoint.Viewpoint{}, fmt.Errorf("%q target: %w", e.ID, err)
	}
	vp := viewpoint.Viewpoint{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Icon:        e.Icon,
		Position:    pos,
		Target:      target,
		Category:    viewpoint.Category(e.Category),
	}
	if len(e.Hotspot) > 0 {
		h, err := vec(e.Hotspot)
		if err != nil {
			return viewpoint.Viewpoint{}, fmt.Errorf("%q hotspot: %w", e.ID, err)
		}
		vp.Hotspot = &h
	}
	return vp, nil
}

// EntryFromViewpoint is the inverse of ViewpointEntry.Viewpoint.
func EntryFromViewpoint(vp viewpoint.Viewpoint) ViewpointEntry {
	p, t := vp.Position.Array(), vp.Target.Array()
	e := ViewpointEntry{
		ID:          vp.ID,
		Name:        vp.Name,
		Description: vp.Description,
		Icon:        vp.Icon,
		Position:    p[:],
		Target:      t[:],
		Category:    string(vp.Category),
	}
	if vp.Hotspot != nil {
		h := vp.Hotspot.Array()
		e.Hotspot = h[:]
	}
	return e
}

func vec(a []float64) (math3d.Vec3, error) {
	if len(a) != 3 {
		return math3d.Vec3{}, fmt.Errorf("got %d values: %w", len(a), ErrBadVector)
	}
	return math3d.V3(a[0], a[1], a[2]), nil
}
