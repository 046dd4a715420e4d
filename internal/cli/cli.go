// Package cli implements the bookfair command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bookfair/pkg/api"
	"github.com/matzehuels/bookfair/pkg/buildinfo"
	"github.com/matzehuels/bookfair/pkg/cache"
	"github.com/matzehuels/bookfair/pkg/observability"
	"github.com/matzehuels/bookfair/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bookfair"

	// defaultProfile scopes keys when --profile is not set. Local stores keep
	// unprefixed keys under it.
	defaultProfile = "default"

	// readRetryDelay is the first pause between retried reads.
	readRetryDelay = 500 * time.Millisecond
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg        Config
	configPath string
	profile    string

	// flag overrides, applied after the config file and environment
	apiURL string
	store  string

	in io.Reader // prompts read from here
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger:  newLogger(w, level),
		cfg:     defaultConfig(),
		profile: defaultProfile,
		in:      os.Stdin,
	}
	c.configPath, _ = configFile()
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Bookfair reserves exhibition stalls from the terminal",
		Long:          `Bookfair is a CLI client for the bookfair stall-reservation service. Browse events, view hall floor plans, pick up to three stalls and confirm the reservation.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			c.registerHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", c.configPath, "config file")
	pf.StringVar(&c.apiURL, "api-url", "", "backend URL (overrides api_url)")
	pf.StringVar(&c.store, "store", "", "local store: file, memory, redis or mongo")
	pf.StringVar(&c.profile, "profile", defaultProfile, "key prefix for sessions and reservations in the store")

	root.AddCommand(c.authCommands()...)
	root.AddCommand(c.eventsCommand())
	root.AddCommand(c.genresCommand())
	root.AddCommand(c.overviewCommand())
	root.AddCommand(c.mapCommand())
	root.AddCommand(c.reserveCommand())
	root.AddCommand(c.reservationsCommand())
	root.AddCommand(c.dashboardCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the effective configuration and applies flag
// overrides.
func (c *CLI) loadConfig() error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.APIURL = c.apiURL
	}
	if c.store != "" {
		cfg.Store = c.store
		if err := cfg.validate(); err != nil {
			return err
		}
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "api", cfg.APIURL, "store", cfg.Store)
	return nil
}

// registerHooks routes observability callbacks to the debug log.
func (c *CLI) registerHooks() {
	observability.SetReservationHooks(&reservationLogHooks{logger: c.Logger})
	observability.SetCacheHooks(&cacheLogHooks{logger: c.Logger})
	observability.SetHTTPHooks(&httpLogHooks{logger: c.Logger})
}

// =============================================================================
// Environment Factory
// =============================================================================

// env bundles the collaborators a command needs: the local store, the
// backend client and the current session.
type env struct {
	store    cache.Cache
	keys     cache.Keyer
	client   *api.Client
	sessions *session.Store
	prefs    *session.Preferences
	sess     *session.Session // nil when signed out
}

// open connects the configured store, restores the session and builds a
// client authenticated with it.
func (c *CLI) open(ctx context.Context) (*env, error) {
	store, keys, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}

	e := &env{
		store:    store,
		keys:     keys,
		sessions: session.NewStore(store, keys),
		prefs:    session.NewPreferences(store, keys),
	}
	e.sess, err = e.sessions.Get(ctx)
	if err != nil {
		c.Logger.Warn("could not read session", "error", err)
	}

	opts := []api.Option{
		api.WithHTTPClient(&http.Client{Timeout: c.cfg.Timeout.Duration}),
		api.WithCache(store, c.cfg.CacheTTL.Duration),
		api.WithKeyer(keys),
		api.WithRetry(1+c.cfg.ReadRetries, readRetryDelay),
	}
	if e.sess != nil {
		opts = append(opts, api.WithToken(e.sess.Token))
	}
	e.client = api.NewClient(c.cfg.APIURL, opts...)
	return e, nil
}

// Close releases the store.
func (e *env) Close() error { return e.store.Close() }

// requireLogin returns the session or an error telling the user to log in.
func (e *env) requireLogin() (*session.Session, error) {
	if e.sess == nil {
		return nil, fmt.Errorf("not logged in (run '%s login' first)", appName)
	}
	return e.sess, nil
}

// user returns the signed-in user, or nil.
func (e *env) user() *api.User {
	if e.sess == nil {
		return nil
	}
	return e.sess.User
}

// openStore connects the configured KV store. Unreachable remote stores fall
// back to the file store with a warning.
func (c *CLI) openStore(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	var (
		remote cache.Cache
		err    error
	)
	switch c.cfg.Store {
	case storeMemory:
		return cache.NewMemory(), c.localKeys(), nil
	case storeRedis:
		remote, err = cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
	case storeMongo:
		remote, err = cache.NewMongo(ctx, cache.MongoOptions{
			URI:      c.cfg.MongoURI,
			Database: c.cfg.MongoDatabase,
		})
	default:
		store, err := c.fileStore()
		return store, c.localKeys(), err
	}

	if err == nil {
		c.Logger.Debug("store connected", "backend", c.cfg.Store, "profile", c.profile)
		return remote, c.scopedKeys(), nil
	}
	if !errors.Is(err, cache.ErrUnavailable) {
		return nil, nil, fmt.Errorf("open %s store: %w", c.cfg.Store, err)
	}
	c.Logger.Warn("store unavailable, using local files", "backend", c.cfg.Store, "error", err)
	store, err := c.fileStore()
	return store, c.localKeys(), err
}

func (c *CLI) scopedKeys() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"+c.profile+":")
}

// localKeys is the keyer of the file and memory stores: unprefixed for the
// default profile, scoped otherwise.
func (c *CLI) localKeys() cache.Keyer {
	if c.profile == "" || c.profile == defaultProfile {
		return cache.NewDefaultKeyer()
	}
	return c.scopedKeys()
}

func (c *CLI) fileStore() (*cache.FileCache, error) {
	dir := c.cfg.StoreDir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open file store: %w", err)
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the store directory using XDG standard (~/.cache/bookfair/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
