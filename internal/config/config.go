// Package config provides configuration parsing for proctop.
package config

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/prabalesh/proctop/internal/logging"
)

// Environment variables consulted by Load.
const (
	EnvConfig   = "PROCTOP_CONFIG"
	EnvProcRoot = "PROCTOP_PROC_ROOT"
	EnvInterval = "PROCTOP_INTERVAL"
	EnvLogLevel = "PROCTOP_LOG_LEVEL"
)

// Config carries runtime options for proctop.
type Config struct {
	// ProcRoot is the mount point of the process information pseudo-filesystem.
	ProcRoot string `yaml:"proc_root"`
	// OSReleasePath is the KEY="VALUE" file holding PRETTY_NAME.
	OSReleasePath string `yaml:"os_release_path"`
	// PasswdPath is the password database used to resolve UIDs.
	PasswdPath string `yaml:"passwd_path"`
	// Interval is the display refresh period.
	Interval time.Duration `yaml:"interval"`
	// ProcessLimit is the number of process rows shown, busiest first. 0 shows all.
	ProcessLimit int `yaml:"process_limit"`
	// JSON prints one snapshot as JSON and exits.
	JSON bool `yaml:"json"`
	// Log configures the logger.
	Log logging.Options `yaml:"log"`
}

func Default() Config {
	return Config{
		ProcRoot:      "/proc",
		OSReleasePath: "/etc/os-release",
		PasswdPath:    "/etc/passwd",
		Interval:      time.Second,
		ProcessLimit:  10,
		Log: logging.Options{
			Filename:   filepath.Join(os.TempDir(), "proctop.log"),
			Level:      "info",
			Format:     "console",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.ProcRoot == "":
		return errors.New("proc root must not be empty")
	case c.OSReleasePath == "":
		return errors.New("os-release path must not be empty")
	case c.PasswdPath == "":
		return errors.New("passwd path must not be empty")
	case c.Interval <= 0:
		return errors.Errorf("interval must be positive, got %s", c.Interval)
	case c.ProcessLimit < 0:
		return errors.Errorf("process limit must not be negative, got %d", c.ProcessLimit)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

// Load builds a Config from, in increasing precedence: defaults, the YAML file
// named by -config or PROCTOP_CONFIG, PROCTOP_* environment variables and
// command-line flags.
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	// First pass only finds the config file.
	var path string
	probe := newFlagSet(&Config{}, &path)
	if err := probe.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}
	if path == "" {
		path = getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	fs := newFlagSet(&cfg, &path)
	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvProcRoot); v != "" {
		cfg.ProcRoot = v
	}
	if v := getenv(EnvInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			// bare numbers are seconds
			if d, err = time.ParseDuration(v + "s"); err != nil {
				return errors.Wrapf(err, "%s", EnvInterval)
			}
		}
		cfg.Interval = d
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func newFlagSet(cfg *Config, path *string) *flag.FlagSet {
	fs := flag.NewFlagSet("proctop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(path, "config", *path, "YAML config file")
	fs.StringVar(&cfg.ProcRoot, "proc", cfg.ProcRoot, "proc filesystem root")
	fs.StringVar(&cfg.OSReleasePath, "os-release", cfg.OSReleasePath, "os-release file")
	fs.StringVar(&cfg.PasswdPath, "passwd", cfg.PasswdPath, "password database")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "refresh interval")
	fs.IntVar(&cfg.ProcessLimit, "n", cfg.ProcessLimit, "number of processes shown (0 = all)")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print one snapshot as JSON and exit")
	fs.StringVar(&cfg.Log.Filename, "log-file", cfg.Log.Filename, "log file (empty = stderr)")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug|info|warn|error")
	return fs
}

// Usage returns the flag help text.
func Usage() string {
	var buf bytes.Buffer
	cfg := Default()
	var path string
	fs := newFlagSet(&cfg, &path)
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	return buf.String()
}
