package shell

import (
	"io"
	"log/slog"
	"strings"

	"github.com/AntonStoeckl/bookapp-api/app/shared/shell/config"
)

// LevelCritical marks failures that need immediate operator attention,
// e.g. a message without a registered handler or an unreachable store during a request.
const LevelCritical = slog.Level(12)

const levelCriticalName = "CRITICAL"

// ParseLogLevel converts a level name to a slog.Level. Unknown names fall back to debug.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical":
		return LevelCritical
	default:
		return slog.LevelDebug
	}
}

// NewLogger creates a *slog.Logger writing JSON or text records to w.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	return slog.New(NewLogHandler(cfg, w))
}

// NewLogHandler creates the slog.Handler used by NewLogger.
func NewLogHandler(cfg config.LogConfig, w io.Writer) slog.Handler {
	options := &slog.HandlerOptions{
		Level:       ParseLogLevel(cfg.Level),
		ReplaceAttr: replaceLevelName,
	}

	if strings.ToLower(cfg.Format) == config.LogFormatText {
		return slog.NewTextHandler(w, options)
	}

	return slog.NewJSONHandler(w, options)
}

// replaceLevelName renders LevelCritical as CRITICAL instead of ERROR+4.
func replaceLevelName(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 || attr.Key != slog.LevelKey {
		return attr
	}

	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue(levelCriticalName)
	}

	return attr
}
