package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the engine configuration
type Config struct {
	WorkDir        string `yaml:"work_dir" json:"work_dir" jsonschema:"required,description=Root directory with <group>/<feed>/conf.json"`
	PublicDir      string `yaml:"public_dir" json:"public_dir" jsonschema:"description=Directory for published feed copies and cached images"`
	WebBaseURL     string `yaml:"web_base_url" json:"web_base_url" jsonschema:"description=Public base URL used for the tracking pixel"`
	ImageURLPrefix string `yaml:"image_url_prefix" json:"image_url_prefix" jsonschema:"description=Public URL of cached images, defaults to web_base_url/img"`

	Run          RunConfig          `yaml:"run" json:"run" jsonschema:"description=Feed run configuration"`
	Fetch        FetchConfig        `yaml:"fetch" json:"fetch" jsonschema:"description=Page fetching configuration"`
	Housekeeping HousekeepingConfig `yaml:"housekeeping" json:"housekeeping" jsonschema:"description=Artifact and snapshot cleanup configuration"`

	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Admin server configuration"`
}

// RunConfig holds settings of feed runs
type RunConfig struct {
	MaxWorkers  int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=4,minimum=1,description=Maximum feeds processed concurrently"`
	FeedTimeout time.Duration `yaml:"feed_timeout" json:"feed_timeout" jsonschema:"default=30m,description=Wall-clock limit of a single feed run"`
	Interval    time.Duration `yaml:"interval" json:"interval" jsonschema:"default=1h,description=Interval between runs of all feeds in daemon mode"`
}

// FetchConfig holds http fetcher settings
type FetchConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-request timeout"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=5s,description=Delay before the single retry of a failed fetch"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=Default user agent"`
}

// HousekeepingConfig holds cleanup settings
type HousekeepingConfig struct {
	Interval            time.Duration `yaml:"interval" json:"interval" jsonschema:"default=24h,description=Interval between housekeeping passes in daemon mode"`
	HTMLArchivingPeriod int           `yaml:"html_archiving_period" json:"html_archiving_period" jsonschema:"default=30,description=Days to keep item artifacts"`
	ListArchivingPeriod int           `yaml:"list_archiving_period" json:"list_archiving_period" jsonschema:"default=7,description=Days to keep list snapshots"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.SetDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema([]byte(expanded)); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills unset values
func (c *Config) SetDefaults() {
	if c.ImageURLPrefix == "" && c.WebBaseURL != "" {
		c.ImageURLPrefix = strings.TrimSuffix(c.WebBaseURL, "/") + "/img"
	}

	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// set defaults for runs
	if c.Run.MaxWorkers == 0 {
		c.Run.MaxWorkers = 4
	}
	if c.Run.FeedTimeout == 0 {
		c.Run.FeedTimeout = 30 * time.Minute
	}
	if c.Run.Interval == 0 {
		c.Run.Interval = time.Hour
	}

	// set defaults for fetch
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.RetryDelay == 0 {
		c.Fetch.RetryDelay = 5 * time.Second
	}

	// set defaults for housekeeping
	if c.Housekeeping.Interval == 0 {
		c.Housekeeping.Interval = 24 * time.Hour
	}
	if c.Housekeeping.HTMLArchivingPeriod == 0 {
		c.Housekeeping.HTMLArchivingPeriod = 30
	}
	if c.Housekeeping.ListArchivingPeriod == 0 {
		c.Housekeeping.ListArchivingPeriod = 7
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.WorkDir == "" {
		return fmt.Errorf("work_dir is required")
	}
	if cfg.Run.MaxWorkers < 1 {
		return fmt.Errorf("run.max_workers must be at least 1")
	}
	if cfg.Run.FeedTimeout < time.Second {
		return fmt.Errorf("run.feed_timeout must be at least 1 second")
	}
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch.timeout must be at least 1 second")
	}
	if cfg.Fetch.RetryDelay < 0 {
		return fmt.Errorf("fetch.retry_delay must be non-negative")
	}
	if cfg.Housekeeping.HTMLArchivingPeriod < 1 || cfg.Housekeeping.ListArchivingPeriod < 1 {
		return fmt.Errorf("housekeeping archiving periods must be at least 1 day")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
