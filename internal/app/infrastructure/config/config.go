package config

import (
	"errors"
	"fmt"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"
	"io/fs"
)

// Flags registers the command-line overrides understood by Load. Flag names are koanf keys.
func Flags(f *flag.FlagSet) {
	f.String("config", "config.toml", "Path to the TOML configuration file")
	f.String("app.log_level", "", "Log level: trace, debug, info, warn, error")
	f.String("app.listen", "", "Settings API and host bridge listen address")
	f.String("data.backend", "", "Data store backend: file or sqlite")
	f.String("data.path", "", "Data store location")
}

// Load reads path over the defaults and applies changed flags from f (may be nil).
// A missing file is not an error: defaults and flags are used as is.
func Load(path string, f *flag.FlagSet) (*Config, error) {
	ko := koanf.New(".")

	if path != "" {
		err := ko.Load(file.Provider(path), toml.Parser())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if f != nil {
		// Only flags set explicitly override the file; "config" is not a config key.
		if err := ko.Load(posflag.ProviderWithFlag(f, ".", ko, func(fl *flag.Flag) (string, interface{}) {
			if fl.Name == "config" || !fl.Changed {
				return "", nil
			}
			return fl.Name, posflag.FlagVal(f, fl)
		}), nil); err != nil {
			return nil, fmt.Errorf("read flags: %w", err)
		}
	}

	cfg := GetDefault()
	if err := ko.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return cfg, nil
}
