package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the host-level settings. Everything the pipeline itself needs
// travels as arguments; this only configures the surrounding process.
type Config struct {
	ListenAddr  string
	GeminiModel string
	LogLevel    string
}

// Build loads configuration from an optional YAML file, FINTRACK_* env vars
// and flag overrides, in increasing precedence.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", "0.0.0.0:3000")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("FINTRACK")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// The default config.yaml is optional; an explicitly named file is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		bind := func(key, flag string) {
			if f := flags.Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
		bind("listen_addr", "listen")
		bind("gemini_model", "model")
		bind("log_level", "log-level")
	}

	return &Config{
		ListenAddr:  v.GetString("listen_addr"),
		GeminiModel: v.GetString("gemini_model"),
		LogLevel:    v.GetString("log_level"),
	}, nil
}
