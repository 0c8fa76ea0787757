package store

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"astrotrade/internal/transition"
	"astrotrade/internal/types"
)

const DefaultPath = "config.yaml"

type Config struct {
	// Timezone is the civil UTC offset, e.g. "+05:30".
	Timezone string `yaml:"timezone"`
	Market   struct {
		Open  string `yaml:"open"`
		Close string `yaml:"close"`
	} `yaml:"market"`
	ReferenceTime       string  `yaml:"reference_time"`
	TransitionTolerance float64 `yaml:"transition_tolerance_days"`
	Workers             int     `yaml:"workers"`
	HolidaysPath        string  `yaml:"holidays_path"`
	ExportDir           string  `yaml:"export_dir"`
	// DefaultDays is the range length when only a start date is given.
	DefaultDays int                           `yaml:"default_days"`
	Profiles    map[string]types.BirthProfile `yaml:"profiles"`
	Server      struct {
		Port               int `yaml:"port"`
		ReadTimeoutSeconds int `yaml:"read_timeout_seconds"`
		MaxRangeDays       int `yaml:"max_range_days"`
	} `yaml:"server"`
	Scheduler struct {
		Enabled bool     `yaml:"enabled"`
		Cron    string   `yaml:"cron"`
		Profile string   `yaml:"profile"`
		Days    int      `yaml:"days"`
		Formats []string `yaml:"formats"`
	} `yaml:"scheduler"`
}

// ProfileNotFoundError is returned for an unknown preset name.
type ProfileNotFoundError struct {
	Name string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found", e.Name)
}

func (c *Config) Validate() error {
	if _, err := ZoneFromOffset(c.Timezone); err != nil {
		return err
	}
	w, err := c.MarketWindow()
	if err != nil {
		return err
	}
	if w.Close <= w.Open {
		return fmt.Errorf("market.close %s must be after market.open %s", c.Market.Close, c.Market.Open)
	}
	if _, err := c.Reference(); err != nil {
		return err
	}
	if c.TransitionTolerance <= 0 || c.TransitionTolerance >= 1 {
		return fmt.Errorf("transition_tolerance_days must be in (0, 1), got %g", c.TransitionTolerance)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	for name, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	if c.Scheduler.Enabled {
		if c.Scheduler.Cron == "" {
			return fmt.Errorf("scheduler.cron is required when the scheduler is enabled")
		}
		if _, err := c.Profile(c.Scheduler.Profile); err != nil {
			return fmt.Errorf("scheduler.profile: %w", err)
		}
	}
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "+05:30"
	}
	if c.Market.Open == "" {
		c.Market.Open = "09:15"
	}
	if c.Market.Close == "" {
		c.Market.Close = "15:30"
	}
	if c.ReferenceTime == "" {
		c.ReferenceTime = "09:15"
	}
	if c.TransitionTolerance == 0 {
		c.TransitionTolerance = transition.DefaultTolerance
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.ExportDir == "" {
		c.ExportDir = "exports"
	}
	if c.DefaultDays == 0 {
		c.DefaultDays = 30
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.MaxRangeDays == 0 {
		c.Server.MaxRangeDays = 366
	}
	if c.Scheduler.Cron == "" {
		c.Scheduler.Cron = "0 0 8 * * MON-FRI"
	}
	if c.Scheduler.Days == 0 {
		c.Scheduler.Days = 1
	}
	if len(c.Scheduler.Formats) == 0 {
		c.Scheduler.Formats = []string{"csv"}
	}
	if c.Profiles == nil {
		c.Profiles = map[string]types.BirthProfile{}
	}
	for name, p := range c.Profiles {
		if p.Name == "" {
			p.Name = name
			c.Profiles[name] = p
		}
	}
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

// ParseConfig decodes YAML, fills defaults and validates.
func ParseConfig(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// Location returns the fixed civil zone.
func (c *Config) Location() *time.Location {
	loc, err := ZoneFromOffset(c.Timezone)
	if err != nil {
		return types.IST
	}
	return loc
}

// MarketWindow parses market.open and market.close.
func (c *Config) MarketWindow() (transition.Window, error) {
	open, err := ParseClock(c.Market.Open)
	if err != nil {
		return transition.Window{}, fmt.Errorf("market.open: %w", err)
	}
	closing, err := ParseClock(c.Market.Close)
	if err != nil {
		return transition.Window{}, fmt.Errorf("market.close: %w", err)
	}
	return transition.Window{Open: open, Close: closing}, nil
}

// Reference is the snapshot time of day as an offset from midnight.
func (c *Config) Reference() (time.Duration, error) {
	d, err := ParseClock(c.ReferenceTime)
	if err != nil {
		return 0, fmt.Errorf("reference_time: %w", err)
	}
	return d, nil
}

// Profile looks up a preset by name, case-insensitively.
func (c *Config) Profile(name string) (types.BirthProfile, error) {
	if p, ok := c.Profiles[name]; ok {
		return p, nil
	}
	for key, p := range c.Profiles {
		if strings.EqualFold(key, name) {
			return p, nil
		}
	}
	return types.BirthProfile{}, &ProfileNotFoundError{Name: name}
}

// ProfileNames returns preset names sorted.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
func ParseClock(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q", v)
}

// ZoneFromOffset builds a fixed zone from "+HH:MM" / "-HH:MM".
func ZoneFromOffset(offset string) (*time.Location, error) {
	offset = strings.TrimSpace(offset)
	if offset == "+05:30" {
		return types.IST, nil
	}
	t, err := time.Parse("-07:00", offset)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone offset %q: expected +HH:MM", offset)
	}
	_, secs := t.Zone()
	return time.FixedZone("UTC"+offset, secs), nil
}
