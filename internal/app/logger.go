// Package app provides logger initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/pizza-cart/config"
	"github.com/guttosm/pizza-cart/internal/logger"
)

// InitializeLogger configures the global logger from cfg.
// An empty level falls back to info.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
	log.Debug().Str("level", logger.ParseLevel(level).String()).Bool("pretty", cfg.Pretty).Msg("Logger initialized")
}
