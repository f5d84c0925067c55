package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"hearing-server/hearingtime"
	"hearing-server/logging"
)

const ENV_PROD = "prod"
const ENV_DEV = "dev"

// Environment variables use this prefix, e.g. HEARINGS_REDIS_ADDRESS.
const ENV_PREFIX = "HEARINGS"

const CONFIG_NAME = "hearings"
const CONFIG_TYPE = "yaml"

// Server config
const DEFAULT_LISTEN = ":8080"

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Case store config
const CASE_STORE_TABLE = "cases"
const CASE_STORE_TIMEOUT = 10 * time.Second

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const CASES_FIXTURE_RESOURCE = "cases.json"

// Hearings refresher config
const HEARINGS_REFRESHER_SCHEDULE = "@every 5m"
const HEARINGS_REFRESHER_TIMEOUT = 30 * time.Second

const DEFAULT_WEEK_START = "sunday"

type RedisConfig struct {
	Address  string `mapstructure:"address" yaml:"address"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

type StoreConfig struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key"`
	Table       string        `mapstructure:"table" yaml:"table"`
	FixturePath string        `mapstructure:"fixture_path" yaml:"fixture_path"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type RefreshConfig struct {
	Schedule string        `mapstructure:"schedule" yaml:"schedule"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type CivilZoneConfig struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Offset string `mapstructure:"offset" yaml:"offset"`
}

// Config is the full service configuration.
type Config struct {
	Env           string          `mapstructure:"env" yaml:"env"`
	Listen        string          `mapstructure:"listen" yaml:"listen"`
	LogLevel      string          `mapstructure:"log_level" yaml:"log_level"`
	Redis         RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Store         StoreConfig     `mapstructure:"store" yaml:"store"`
	Refresh       RefreshConfig   `mapstructure:"refresh" yaml:"refresh"`
	CivilZone     CivilZoneConfig `mapstructure:"civil_zone" yaml:"civil_zone"`
	ActiveWindow  time.Duration   `mapstructure:"active_window" yaml:"active_window"`
	UpcomingLimit int             `mapstructure:"upcoming_limit" yaml:"upcoming_limit"`
	WeekStart     string          `mapstructure:"week_start" yaml:"week_start"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Env:      ENV_DEV,
		Listen:   DEFAULT_LISTEN,
		LogLevel: logging.DEFAULT_LOG_LEVEL,
		Redis: RedisConfig{
			Address:  REDIS_DB_ADDRESS,
			Password: REDIS_DB_PASSWORD,
			DB:       REDIS_DB,
		},
		Store: StoreConfig{
			Table:       CASE_STORE_TABLE,
			FixturePath: filepath.Join(RESOURCES_PATH_PREFIX, CASES_FIXTURE_RESOURCE),
			Timeout:     CASE_STORE_TIMEOUT,
		},
		Refresh: RefreshConfig{
			Schedule: HEARINGS_REFRESHER_SCHEDULE,
			Timeout:  HEARINGS_REFRESHER_TIMEOUT,
		},
		CivilZone: CivilZoneConfig{
			Name:   hearingtime.DEFAULT_ZONE_NAME,
			Offset: hearingtime.FormatOffset(hearingtime.DEFAULT_ZONE_OFFSET),
		},
		ActiveWindow:  hearingtime.DEFAULT_ACTIVE_WINDOW,
		UpcomingLimit: hearingtime.DEFAULT_UPCOMING_LIMIT,
		WeekStart:     DEFAULT_WEEK_START,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("env", d.Env)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("redis.address", d.Redis.Address)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("store.base_url", d.Store.BaseURL)
	v.SetDefault("store.api_key", d.Store.APIKey)
	v.SetDefault("store.table", d.Store.Table)
	v.SetDefault("store.fixture_path", d.Store.FixturePath)
	v.SetDefault("store.timeout", d.Store.Timeout)
	v.SetDefault("refresh.schedule", d.Refresh.Schedule)
	v.SetDefault("refresh.timeout", d.Refresh.Timeout)
	v.SetDefault("civil_zone.name", d.CivilZone.Name)
	v.SetDefault("civil_zone.offset", d.CivilZone.Offset)
	v.SetDefault("active_window", d.ActiveWindow)
	v.SetDefault("upcoming_limit", d.UpcomingLimit)
	v.SetDefault("week_start", d.WeekStart)
}

// Load reads configuration from path, or from ./hearings.yaml when path is
// empty, then applies HEARINGS_* environment overrides. A missing default
// file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(CONFIG_NAME)
		v.SetConfigType(CONFIG_TYPE)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Zone(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.WeekStartDay(); err != nil {
		errs = append(errs, fmt.Errorf("week_start: %w", err))
	}
	if c.ActiveWindow <= 0 {
		errs = append(errs, fmt.Errorf("active_window must be positive, got %s", c.ActiveWindow))
	}
	if c.UpcomingLimit <= 0 {
		errs = append(errs, fmt.Errorf("upcoming_limit must be positive, got %d", c.UpcomingLimit))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if _, err := cron.ParseStandard(c.Refresh.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("refresh.schedule %q: %w", c.Refresh.Schedule, err))
	}
	if c.Env == ENV_PROD {
		if c.Store.BaseURL == "" {
			errs = append(errs, errors.New("store.base_url is required in prod"))
		}
		if c.Store.APIKey == "" {
			errs = append(errs, errors.New("store.api_key is required in prod"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Zone returns the configured civil zone.
func (c *Config) Zone() (hearingtime.CivilZone, error) {
	offset, err := hearingtime.ParseOffset(c.CivilZone.Offset)
	if err != nil {
		return hearingtime.CivilZone{}, fmt.Errorf("civil_zone.offset: %w", err)
	}
	name := c.CivilZone.Name
	if name == "" {
		name = "UTC" + hearingtime.FormatOffset(offset)
	}
	return hearingtime.CivilZone{Name: name, Offset: offset}, nil
}

// WeekStartDay returns the configured first day of the calendar week.
func (c *Config) WeekStartDay() (time.Weekday, error) {
	return hearingtime.ParseWeekday(c.WeekStart)
}

// Save writes cfg as YAML. The file is replaced atomically and is readable by
// the owner only since it may hold the store API key.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".hearings-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
