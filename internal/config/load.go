package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Load merges defaults, the optional config file, LINKSTAT_* environment
// variables and the parsed flags, in increasing order of precedence
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetConfigName("linkstat")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/linkstat")
	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("LINKSTAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for name, key := range flagKeys {
		if flag := fs.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// viper would split header values on commas, so read them from the flag
	headers, err := fs.GetStringArray("header")
	if err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}
	cfg.Headers = headers

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("url", DefaultURL)
	v.SetDefault("count", DefaultCount)
	v.SetDefault("timeout", "0s")
	v.SetDefault("max_redirects", 30)
	v.SetDefault("fail_on_http_error", false)
	v.SetDefault("report_dir", "")

	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")
}
