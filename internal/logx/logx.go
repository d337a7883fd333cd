// Package logx wraps github.com/sirupsen/logrus with named loggers.
//
// A named logger is a *logrus.Entry carrying the logger name in the
// "logger" field, which the text format prints in brackets.
package logx

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NameField is the entry field holding the logger name.
const NameField = "logger"

type Config struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

var root = logrus.StandardLogger()

// Configure applies the configuration to the root logger.
func Configure(config Config) error {
	level := logrus.InfoLevel
	if config.Level != "" {
		var err error
		level, err = logrus.ParseLevel(config.Level)
		if err != nil {
			return errors.Wrapf(err, "parse level %s", config.Level)
		}
	}

	var formatter logrus.Formatter
	switch strings.ToLower(config.Format) {
	case "", "text":
		formatter = &format{colored: isTerminal(os.Stderr)}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return errors.Errorf("unsupported log format: %s", config.Format)
	}

	root.SetLevel(level)
	root.SetFormatter(formatter)
	return nil
}

// SetOutput redirects the root logger.
func SetOutput(out io.Writer) {
	root.SetOutput(out)
}

// Root returns the logger all named loggers derive from.
func Root() *logrus.Logger {
	return root
}

// Get returns a logger with the specified name.
func Get(name string) *logrus.Entry {
	return root.WithField(NameField, name)
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return stat.Mode()&os.ModeCharDevice != 0
}
