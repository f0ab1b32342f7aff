package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Watch re-unmarshals the configuration whenever the config file changes
// on disk and hands the fresh snapshot to fn. Call after LoadConfig.
func Watch(logger zerolog.Logger, fn func(*Config)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("config file changed")

		var cfg Config
		if err := viper.Unmarshal(&cfg); err != nil {
			logger.Error().Err(err).Msg("reloading config failed")
			return
		}
		fn(&cfg)
	})
	viper.WatchConfig()
}
