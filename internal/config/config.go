// Package config loads protocolkb settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"protocolkb/internal/blob"
	"protocolkb/internal/core"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PROTOCOLKB_"

// Config holds all protocolkb configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Audit   AuditConfig   `yaml:"audit"`
	Blob    BlobConfig    `yaml:"blob"`
	Exports ExportsConfig `yaml:"exports"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	Metrics         bool   `yaml:"metrics"` // expose /metrics and /debug/vars
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// AuditConfig selects the export audit log backend.
type AuditConfig struct {
	Driver      string `yaml:"driver"` // memory, sqlite, postgres
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// BlobConfig selects the export artifact store.
type BlobConfig struct {
	Driver string   `yaml:"driver"` // fs, s3, memory
	FSRoot string   `yaml:"fs_root"`
	S3     S3Config `yaml:"s3"`
}

// S3Config mirrors the S3 blob options. Credentials left empty fall back to
// the default AWS chain.
type S3Config struct {
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
	KeyPrefix       string `yaml:"key_prefix"`
}

// ExportsConfig tunes the export worker.
type ExportsConfig struct {
	QueueSize int    `yaml:"queue_size"`
	URLExpiry string `yaml:"url_expiry"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "10s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "15s",
			Metrics:         true,
		},
		Logging: LoggingConfig{Level: "info"},
		Audit: AuditConfig{
			Driver:     string(core.AuditMemory),
			SQLitePath: "protocolkb-audit.db",
		},
		Blob: BlobConfig{
			Driver: string(blob.DriverFilesystem),
			FSRoot: "./blobdata",
			S3:     S3Config{Region: "us-east-1", KeyPrefix: "protocolkb/"},
		},
		Exports: ExportsConfig{QueueSize: 32, URLExpiry: "15m"},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ADDR":                 &c.Server.Addr,
		"SHUTDOWN_TIMEOUT":     &c.Server.ShutdownTimeout,
		"LOG_LEVEL":            &c.Logging.Level,
		"AUDIT_DRIVER":         &c.Audit.Driver,
		"AUDIT_SQLITE_PATH":    &c.Audit.SQLitePath,
		"AUDIT_POSTGRES_DSN":   &c.Audit.PostgresDSN,
		"BLOB_DRIVER":          &c.Blob.Driver,
		"BLOB_FS_ROOT":         &c.Blob.FSRoot,
		"S3_REGION":            &c.Blob.S3.Region,
		"S3_BUCKET":            &c.Blob.S3.Bucket,
		"S3_ENDPOINT":          &c.Blob.S3.Endpoint,
		"S3_ACCESS_KEY_ID":     &c.Blob.S3.AccessKeyID,
		"S3_SECRET_ACCESS_KEY": &c.Blob.S3.SecretAccessKey,
		"S3_KEY_PREFIX":        &c.Blob.S3.KeyPrefix,
		"EXPORT_URL_EXPIRY":    &c.Exports.URLExpiry,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"METRICS":         &c.Server.Metrics,
		"LOG_DEVELOPMENT": &c.Logging.Development,
		"S3_PATH_STYLE":   &c.Blob.S3.PathStyle,
	}
	for name, dst := range bools {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}

	if v, ok := lookup(EnvPrefix + "EXPORT_QUEUE_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sEXPORT_QUEUE_SIZE: %w", EnvPrefix, err)
		}
		c.Exports.QueueSize = n
	}
	return nil
}

// Validate rejects unknown drivers, unparseable durations and missing
// backend settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr required"))
	}
	durations := map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"exports.url_expiry":      c.Exports.URLExpiry,
	}
	for _, field := range sortedFields(durations) {
		if d, err := time.ParseDuration(durations[field]); err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", field, durations[field]))
		}
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}

	if !slices.Contains(core.AuditDrivers(), core.AuditDriver(c.Audit.Driver)) {
		errs = append(errs, fmt.Errorf("audit.driver: unknown driver %q (valid: %v)", c.Audit.Driver, core.AuditDrivers()))
	}
	switch core.AuditDriver(c.Audit.Driver) {
	case core.AuditSQLite:
		if c.Audit.SQLitePath == "" {
			errs = append(errs, errors.New("audit.sqlite_path required for sqlite driver"))
		}
	case core.AuditPostgres:
		if c.Audit.PostgresDSN == "" {
			errs = append(errs, errors.New("audit.postgres_dsn required for postgres driver"))
		}
	}

	if !slices.Contains(blob.Drivers(), blob.Driver(c.Blob.Driver)) {
		errs = append(errs, fmt.Errorf("blob.driver: unknown driver %q (valid: %v)", c.Blob.Driver, blob.Drivers()))
	}
	if blob.Driver(c.Blob.Driver) == blob.DriverS3 && c.Blob.S3.Bucket == "" {
		errs = append(errs, errors.New("blob.s3.bucket required for s3 driver"))
	}
	if c.Exports.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("exports.queue_size: must be positive, got %d", c.Exports.QueueSize))
	}
	return errors.Join(errs...)
}

func sortedFields(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ReadTimeout returns server.read_timeout, defaulting to 10s.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 10*time.Second)
}

// WriteTimeout returns server.write_timeout, defaulting to 30s.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 30*time.Second)
}

// ShutdownTimeout returns server.shutdown_timeout, defaulting to 15s.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 15*time.Second)
}

// URLExpiry returns exports.url_expiry, defaulting to 15m.
func (c *Config) URLExpiry() time.Duration {
	return parseDuration(c.Exports.URLExpiry, 15*time.Minute)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// AuditOptions maps the audit section onto core.AuditOptions.
func (c *Config) AuditOptions() core.AuditOptions {
	return core.AuditOptions{
		Driver:      core.AuditDriver(c.Audit.Driver),
		SQLitePath:  c.Audit.SQLitePath,
		PostgresDSN: c.Audit.PostgresDSN,
	}
}

// BlobOptions maps the blob section onto blob.Options.
func (c *Config) BlobOptions() blob.Options {
	s3 := c.Blob.S3
	return blob.Options{
		Driver: blob.Driver(c.Blob.Driver),
		FSRoot: c.Blob.FSRoot,
		S3: blob.S3Config{
			Region:          s3.Region,
			Bucket:          s3.Bucket,
			Endpoint:        s3.Endpoint,
			AccessKeyID:     s3.AccessKeyID,
			SecretAccessKey: s3.SecretAccessKey,
			PathStyle:       s3.PathStyle,
			KeyPrefix:       s3.KeyPrefix,
		},
	}
}
