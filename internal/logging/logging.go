// Package logging bootstraps the daemon's structured logger. cmd/redsearchd
// logs through the *zap.SugaredLogger this package builds rather than the
// standard library's log package, so a single level/encoding decision here
// governs the daemon's output the way cmd/node and cmd/coordinator's
// log.Printf calls all went through one log.Logger. The internal library
// packages do not log.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.SugaredLogger at the given level ("debug", "info",
// "warn", "error"; empty defaults to "info", and an unrecognized level is
// returned as an error). json selects
// JSON-encoded output (for production log shipping); when false, output is
// the console-friendly encoding zap.NewDevelopmentConfig uses.
func New(level string, json bool) (*zap.SugaredLogger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if json {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger.Sugar(), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("logging: unrecognized level %q: %w", level, err)
	}
	return lvl, nil
}

// sync is a variable so tests can stub it out, mirroring cmd/node's
// logFatal indirection for the same reason: *zap.Logger.Sync reliably
// errors against a plain stdout/stderr sink on some platforms, and callers
// should not treat that as fatal.
var sync = func(l *zap.SugaredLogger) error { return l.Sync() }

// Sync flushes any buffered log entries. Call it in a deferred statement
// right after New returns. Errors are intentionally swallowed by callers
// that don't care whether the terminal sink supports syncing.
func Sync(l *zap.SugaredLogger) error {
	return sync(l)
}
