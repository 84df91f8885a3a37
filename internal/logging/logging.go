// Package logging configures the CLI's logrus logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup builds a logger writing to out. format is "json" or "text"; an empty
// level means info.
func Setup(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		lvl = parsed
	}

	logger := &logrus.Logger{
		Out:       out,
		Level:     lvl,
		Hooks:     make(logrus.LevelHooks),
		ExitFunc:  logrus.StandardLogger().ExitFunc,
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	}
	switch strings.ToLower(format) {
	case "", "text":
	case "json":
		logger.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}
