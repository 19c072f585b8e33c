package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

type Config struct {
	Level string
	JSON  bool
	Out   io.Writer
}

// Setup configures the standard logrus logger used throughout the module. Warnings and errors
// are also recorded on the active span, when there is one.
func Setup(cfg Config) error {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		lvl, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("logger.Setup: invalid level %q: %w", cfg.Level, err)
		}
		level = lvl
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	logrus.SetOutput(out)
	logrus.SetLevel(level)

	if cfg.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
	)))

	return nil
}
