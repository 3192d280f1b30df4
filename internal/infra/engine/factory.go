package engine

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
)

// Config selects an engine implementation and its settings.
type Config struct {
	Type     string         // "beep" or "null"
	Settings map[string]any // Implementation-specific settings
}

type beepSettings struct {
	BufferMs int `mapstructure:"buffer_ms"`
}

// New creates an engine from configuration.
func New(cfg Config) (Engine, error) {
	switch cfg.Type {
	case "beep", "":
		var s beepSettings
		if err := mapstructure.Decode(cfg.Settings, &s); err != nil {
			return nil, errors.Wrap(err, "failed to decode beep engine settings")
		}
		if s.BufferMs <= 0 {
			s.BufferMs = 100
		}
		zlog.Info().Msgf("created engine: type=beep buffer_ms=%d", s.BufferMs)
		return NewBeep(time.Duration(s.BufferMs) * time.Millisecond), nil

	case "null":
		zlog.Info().Msg("created engine: type=null")
		return NewNull(), nil

	default:
		return nil, errors.Newf("unsupported engine type: %s", cfg.Type)
	}
}
