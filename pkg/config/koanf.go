package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/beautify/pkg/errors"
	"github.com/arthur-debert/beautify/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName is the directory name under $XDG_CONFIG_HOME
	AppName = "beautify"
	// EnvPrefix prefixes environment overrides
	EnvPrefix = "BEAUTIFY_"
)

// userConfigNames are tried in order inside the config directory
var userConfigNames = []string{"config.toml", "config.yaml", "config.yml"}

// Options selects the sources Load layers over the embedded defaults
type Options struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// SkipUser disables the lookup of the XDG user config file.
	SkipUser bool
	// SkipEnv disables BEAUTIFY_* environment overrides.
	SkipEnv bool
	// Overrides are applied last, keyed by dotted path ("code.theme").
	Overrides map[string]interface{}
}

var (
	defaultOnce sync.Once
	defaultCfg  *Config
)

// Default returns the embedded defaults only. The result is shared and
// must not be modified.
func Default() *Config {
	defaultOnce.Do(func() {
		cfg, err := Load(Options{SkipUser: true, SkipEnv: true})
		if err != nil {
			panic("embedded defaults are invalid: " + err.Error())
		}
		defaultCfg = cfg
	})
	return defaultCfg
}

// Load builds the configuration from the embedded defaults, the user file,
// the environment and the given overrides.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	path := opts.Path
	if path == "" && !opts.SkipUser {
		path = findUserConfig()
	} else if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path).WithDetail("path", path)
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	}

	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// UserConfigDir returns $XDG_CONFIG_HOME/beautify
func UserConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

func findUserConfig() string {
	dir := UserConfigDir()
	for _, name := range userConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
