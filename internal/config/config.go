package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	Browser  BrowserConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
	// Seed loads the sample catalogue into an empty database.
	Seed bool
}

// LogConfig controls the query log. The terminal belongs to the UI, so logs
// only ever go to a file; an empty File disables logging.
type LogConfig struct {
	Level string
	File  string
}

// BrowserConfig describes the selector chain.
type BrowserConfig struct {
	Parent ListConfig
	Child  ListConfig
	Result ResultConfig
}

// ListConfig binds one list pane to a table column.
type ListConfig struct {
	Title string
	Table string
	Field string
	Sort  []string
	// LinkField is the foreign key on Table pointing at the parent's row id.
	LinkField string `mapstructure:"link_field"`
	// IDColumn is the surrogate key of Table.
	IDColumn string `mapstructure:"id_column"`
}

// ResultConfig names the fields shown for the selected child row.
type ResultConfig struct {
	Title  string
	Fields []string
}

// Load reads configuration from file, env and flags. Env var overrides use
// prefix PAINTINGDB_. flags may be nil; only flags that were set override.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "paintingdb", "painting.db"))
	v.SetDefault("database.seed", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.Getenv("HOME"), ".local", "state", "paintingdb", "paintingdb.log"))
	v.SetDefault("browser.parent.title", "Painters")
	v.SetDefault("browser.parent.table", "painters")
	v.SetDefault("browser.parent.field", "name")
	v.SetDefault("browser.parent.sort", []string{})
	v.SetDefault("browser.parent.id_column", "_id")
	v.SetDefault("browser.child.title", "Paintings")
	v.SetDefault("browser.child.table", "paintings")
	v.SetDefault("browser.child.field", "title")
	v.SetDefault("browser.child.sort", []string{"title"})
	v.SetDefault("browser.child.link_field", "painter_id")
	v.SetDefault("browser.child.id_column", "_id")
	v.SetDefault("browser.result.title", "Painting")
	v.SetDefault("browser.result.fields", []string{"title", "year"})

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PAINTINGDB_CONFIG")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "paintingdb"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PAINTINGDB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing default file is fine, an explicit path that fails to load is not
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// flagKeys maps config keys to the flag names bound over them.
var flagKeys = map[string]string{
	"database.path": "db",
	"database.seed": "seed",
	"log.level":     "log-level",
	"log.file":      "log-file",
}

// Flags returns the command line flags Load understands.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a TOML config file")
	fs.String("db", "", "path to the sqlite database")
	fs.Bool("seed", true, "load the sample catalogue into an empty database")
	fs.Bool("reset", false, "wipe the catalogue and reseed it before starting")
	fs.String("write-config", "", "write the resolved config to this TOML file and exit")
	fs.String("log-level", "", "query log level (debug, info, warn, error)")
	fs.String("log-file", "", "query log file (empty disables logging)")
	fs.BoolP("help", "h", false, "show help")
	return fs
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks every table and column name against the identifier
// allow-list. Names are interpolated into SQL, values never are.
func (c Config) Validate() error {
	b := c.Browser
	check := func(what, name string) error {
		if !identPattern.MatchString(name) {
			return fmt.Errorf("config: %s %q is not a plain identifier", what, name)
		}
		return nil
	}
	for _, l := range []struct {
		key string
		cfg ListConfig
	}{{"browser.parent", b.Parent}, {"browser.child", b.Child}} {
		if err := check(l.key+".table", l.cfg.Table); err != nil {
			return err
		}
		if err := check(l.key+".field", l.cfg.Field); err != nil {
			return err
		}
		if l.cfg.IDColumn != "" {
			if err := check(l.key+".id_column", l.cfg.IDColumn); err != nil {
				return err
			}
		}
		for _, s := range l.cfg.Sort {
			if err := check(l.key+".sort", s); err != nil {
				return err
			}
		}
	}
	if err := check("browser.child.link_field", b.Child.LinkField); err != nil {
		return err
	}
	for _, f := range b.Result.Fields {
		if f == "*" {
			continue
		}
		if err := check("browser.result.fields", f); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the provided config to path as TOML, creating the directory
// if needed. An empty path uses $PAINTINGDB_CONFIG or the default location.
func Save(cfg Config, path string) error {
	if path == "" {
		path = os.Getenv("PAINTINGDB_CONFIG")
	}
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "paintingdb", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.seed", cfg.Database.Seed)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	setList(v, "browser.parent", cfg.Browser.Parent)
	setList(v, "browser.child", cfg.Browser.Child)
	v.Set("browser.result.title", cfg.Browser.Result.Title)
	v.Set("browser.result.fields", cfg.Browser.Result.Fields)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveRequested writes cfg to the path given with --write-config. It reports
// the path and whether the flag was set.
func SaveRequested(flags *pflag.FlagSet, cfg Config) (string, bool, error) {
	f := flags.Lookup("write-config")
	if f == nil || !f.Changed {
		return "", false, nil
	}
	path := f.Value.String()
	if path == "" {
		return "", true, fmt.Errorf("write-config: empty path")
	}
	if err := Save(cfg, path); err != nil {
		return path, true, err
	}
	return path, true, nil
}

func setList(v *viper.Viper, prefix string, l ListConfig) {
	v.Set(prefix+".title", l.Title)
	v.Set(prefix+".table", l.Table)
	v.Set(prefix+".field", l.Field)
	v.Set(prefix+".sort", l.Sort)
	if l.LinkField != "" {
		v.Set(prefix+".link_field", l.LinkField)
	}
	if l.IDColumn != "" {
		v.Set(prefix+".id_column", l.IDColumn)
	}
}
