// Package config loads streamydeck.yaml with viper and reloads it when the
// file changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"streamydeck/internal/asset"
	"streamydeck/internal/deck"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	configName     = "streamydeck"
	configType     = "yaml"
	configFilename = configName + "." + configType
	envPrefix      = "STREAMYDECK"

	keyAssetsDir  = "assets_dir"
	keyFont       = "font"
	keyBrightness = "brightness"
	keyCooldown   = "cooldown"
	keyPacing     = "pacing"
	keyLogFile    = "log_file"
	keyRows       = "layout.rows"
	keyCols       = "layout.cols"

	DefaultBrightness = 30
	DefaultCooldown   = 2 * time.Second
	DefaultPacing     = 10 * time.Millisecond
	DefaultLogFile    = "streamydeck.log"
	DefaultRows       = 3
	DefaultCols       = 5
)

// Values is one consistent reading of the configuration.
type Values struct {
	AssetsDir  string
	Font       string
	Brightness int
	Cooldown   time.Duration
	Pacing     time.Duration
	LogFile    string
	Rows, Cols int
}

// Config provides access to the configuration and reloads it when the file
// changes on disk.
type Config struct {
	logger *zap.SugaredLogger
	v      *viper.Viper

	mu     sync.RWMutex
	values Values

	consumersMu     sync.Mutex
	reloadConsumers []chan bool
	watching        atomic.Bool
}

// New creates a config reading path. An empty path searches the working
// directory and ~/.config/streamydeck for streamydeck.yaml. Environment
// variables prefixed STREAMYDECK_ override file values
// (STREAMYDECK_LAYOUT_ROWS for layout.rows).
func New(logger *zap.SugaredLogger, path string) *Config {
	logger = logger.Named("config")

	v := viper.New()
	v.SetConfigType(configType)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyAssetsDir, asset.DefaultDir)
	v.SetDefault(keyFont, asset.DefaultFont)
	v.SetDefault(keyBrightness, DefaultBrightness)
	v.SetDefault(keyCooldown, DefaultCooldown)
	v.SetDefault(keyPacing, DefaultPacing)
	v.SetDefault(keyLogFile, DefaultLogFile)
	v.SetDefault(keyRows, DefaultRows)
	v.SetDefault(keyCols, DefaultCols)

	c := &Config{logger: logger, v: v}
	c.populate()
	logger.Debug("Created config instance")
	return c
}

// Load reads the config file. A missing file is not an error: defaults and
// environment values apply.
func (c *Config) Load() error {
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			c.logger.Debugw("No config file, using defaults", "searched", configFilename)
		} else {
			c.logger.Warnw("Viper failed to read config", "error", err)
			return fmt.Errorf("read config: %w", err)
		}
	}

	c.populate()
	c.logger.Infow("Loaded config", "path", c.v.ConfigFileUsed(), "values", c.Values())
	return nil
}

// SetLogger replaces the logger once the application logger is built from
// the loaded values.
func (c *Config) SetLogger(logger *zap.SugaredLogger) {
	c.logger = logger.Named("config")
}

// Values returns the current configuration.
func (c *Config) Values() Values {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values
}

// Path returns the config file in use, or "" when none was found.
func (c *Config) Path() string {
	return c.v.ConfigFileUsed()
}

// SubscribeToChanges returns a channel that receives a value after each
// successful reload. A consumer that is still busy with the previous
// reload misses the notification, not the values.
func (c *Config) SubscribeToChanges() <-chan bool {
	ch := make(chan bool, 1)
	c.consumersMu.Lock()
	c.reloadConsumers = append(c.reloadConsumers, ch)
	c.consumersMu.Unlock()
	return ch
}

// WatchConfigFileChanges reloads the config whenever the file is written,
// until StopWatchingConfigFile is called.
func (c *Config) WatchConfigFileChanges() {
	path := c.v.ConfigFileUsed()
	if path == "" {
		c.logger.Debug("No config file to watch")
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.logger.Debugw("Config file not on disk, not watching", "path", path)
		return
	}
	c.logger.Debugw("Starting to watch config file for changes", "path", path)

	const (
		minTimeBetweenReloadAttempts = 500 * time.Millisecond
		delayBetweenEventAndReload   = 50 * time.Millisecond
	)
	var lastAttemptedReload time.Time

	c.watching.Store(true)
	c.v.OnConfigChange(func(event fsnotify.Event) {
		if !c.watching.Load() || !event.Has(fsnotify.Write) {
			return
		}
		now := time.Now()
		if now.Sub(lastAttemptedReload) < minTimeBetweenReloadAttempts {
			return
		}
		lastAttemptedReload = now

		c.logger.Debugw("Config file modified, attempting reload", "event", event)
		<-time.After(delayBetweenEventAndReload)
		if err := c.Load(); err != nil {
			c.logger.Warnw("Failed to reload config file", "error", err)
			return
		}
		c.logger.Info("Reloaded config successfully")
		c.onConfigReloaded()
	})
	c.v.WatchConfig()
}

// StopWatchingConfigFile stops reacting to config file changes.
func (c *Config) StopWatchingConfigFile() {
	if c.watching.Swap(false) {
		c.logger.Debug("Stopping config file watcher")
	}
}

func (c *Config) onConfigReloaded() {
	c.consumersMu.Lock()
	defer c.consumersMu.Unlock()
	c.logger.Debug("Notifying consumers about configuration reload")
	for _, consumer := range c.reloadConsumers {
		select {
		case consumer <- true:
		default:
		}
	}
}

// populate validates the viper values, replacing bad ones with defaults.
func (c *Config) populate() {
	vals := Values{
		AssetsDir:  c.v.GetString(keyAssetsDir),
		Font:       c.v.GetString(keyFont),
		Brightness: c.v.GetInt(keyBrightness),
		Cooldown:   c.v.GetDuration(keyCooldown),
		Pacing:     c.v.GetDuration(keyPacing),
		LogFile:    c.v.GetString(keyLogFile),
		Rows:       c.v.GetInt(keyRows),
		Cols:       c.v.GetInt(keyCols),
	}

	if vals.AssetsDir == "" {
		vals.AssetsDir = asset.DefaultDir
	}
	if vals.Font == "" {
		vals.Font = asset.DefaultFont
	}
	if clamped := deck.ClampBrightness(vals.Brightness); clamped != vals.Brightness {
		c.logger.Warnw("Brightness out of range, clamping",
			"key", keyBrightness,
			"invalidValue", vals.Brightness,
			"clampedValue", clamped)
		vals.Brightness = clamped
	}
	if vals.Cooldown < 0 {
		c.logger.Warnw("Invalid cooldown specified, using default value",
			"key", keyCooldown,
			"invalidValue", vals.Cooldown,
			"defaultValue", DefaultCooldown)
		vals.Cooldown = DefaultCooldown
	}
	if vals.Pacing < 0 {
		c.logger.Warnw("Invalid pacing specified, using default value",
			"key", keyPacing,
			"invalidValue", vals.Pacing,
			"defaultValue", DefaultPacing)
		vals.Pacing = DefaultPacing
	}
	if vals.Rows <= 0 {
		c.logger.Warnw("Invalid row count specified, using default value",
			"key", keyRows,
			"invalidValue", vals.Rows,
			"defaultValue", DefaultRows)
		vals.Rows = DefaultRows
	}
	if vals.Cols <= 0 {
		c.logger.Warnw("Invalid column count specified, using default value",
			"key", keyCols,
			"invalidValue", vals.Cols,
			"defaultValue", DefaultCols)
		vals.Cols = DefaultCols
	}

	c.mu.Lock()
	c.values = vals
	c.mu.Unlock()
}
