package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookfair/pkg/api"
	"github.com/matzehuels/bookfair/pkg/broker"
)

// envPrefix prefixes every environment override, e.g. BOOKFAIR_API_URL.
const envPrefix = "BOOKFAIR_"

// Store backends.
const (
	storeFile   = "file"
	storeMemory = "memory"
	storeRedis  = "redis"
	storeMongo  = "mongo"
)

// Config is the effective configuration. Values come from, in increasing
// precedence: defaults, config.toml, .env and BOOKFAIR_* variables, flags.
type Config struct {
	APIURL string `toml:"api_url"`

	Store         string `toml:"store"`
	StoreDir      string `toml:"store_dir,omitempty"`
	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db,omitempty"`
	MongoURI      string `toml:"mongo_uri,omitempty"`
	MongoDatabase string `toml:"mongo_database,omitempty"`

	AMQPURL string `toml:"amqp_url,omitempty"`

	CacheTTL duration `toml:"cache_ttl"`
	Timeout  duration `toml:"timeout"`

	// ReadRetries repeats failed listing reads; 0 means a single attempt.
	ReadRetries int `toml:"read_retries,omitempty"`
}

// duration is a time.Duration that reads and writes "5m" style strings.
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// defaultConfig returns the built-in configuration.
func defaultConfig() Config {
	return Config{
		APIURL:   "http://localhost:8080",
		Store:    storeFile,
		CacheTTL: duration{api.DefaultCacheTTL},
		Timeout:  duration{api.DefaultTimeout},
	}
}

// =============================================================================
// Loading
// =============================================================================

// loadConfig reads path (a missing file is fine), then .env from the working
// directory, then BOOKFAIR_* variables.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

// applyEnv overrides cfg from BOOKFAIR_* variables.
func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"API_URL":        &cfg.APIURL,
		"STORE":          &cfg.Store,
		"STORE_DIR":      &cfg.StoreDir,
		"REDIS_ADDR":     &cfg.RedisAddr,
		"REDIS_PASSWORD": &cfg.RedisPassword,
		"MONGO_URI":      &cfg.MongoURI,
		"MONGO_DATABASE": &cfg.MongoDatabase,
		"AMQP_URL":       &cfg.AMQPURL,
	}
	for name, dst := range str {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	for name, dst := range map[string]*int{"REDIS_DB": &cfg.RedisDB, "READ_RETRIES": &cfg.ReadRetries} {
		if v, ok := lookup(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = n
		}
	}
	for name, dst := range map[string]*duration{"CACHE_TTL": &cfg.CacheTTL, "TIMEOUT": &cfg.Timeout} {
		if v, ok := lookup(envPrefix + name); ok {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
		}
	}
	return nil
}

func (cfg *Config) validate() error {
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	switch cfg.Store {
	case "":
		cfg.Store = storeFile
	case storeFile, storeMemory, storeRedis, storeMongo:
	default:
		return fmt.Errorf("unknown store %q (want file, memory, redis or mongo)", cfg.Store)
	}
	if cfg.Timeout.Duration <= 0 {
		cfg.Timeout.Duration = api.DefaultTimeout
	}
	if cfg.CacheTTL.Duration < 0 {
		cfg.CacheTTL.Duration = 0
	}
	cfg.ReadRetries = max(cfg.ReadRetries, 0)
	return nil
}

// brokerURL returns the broker URL for consumers, falling back to the local
// default.
func (cfg Config) brokerURL() string {
	if cfg.AMQPURL != "" {
		return cfg.AMQPURL
	}
	return broker.DefaultURL
}

func (cfg Config) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Commands
// =============================================================================

// configCommand creates the config command with subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration file",
	}
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			shown := c.cfg
			if shown.RedisPassword != "" {
				shown.RedisPassword = "********"
			}
			data, err := shown.encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				return fmt.Errorf("no config path (set XDG_CONFIG_HOME or --config)")
			}
			if _, err := os.Stat(path); err == nil && !force {
				printWarning("Config already exists")
				printFile(path)
				printNextStep("Overwrite with", appName+" config init --force")
				return nil
			}
			data, err := defaultConfig().encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(c.configPath)
		},
	}
}

// =============================================================================
// Paths
// =============================================================================

// configFile returns the config path using XDG standard
// (~/.config/bookfair/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
