package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type appNameHook struct {
	appName string
}

func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = h.appName
	return nil
}

// New builds the process logger. Unknown levels fall back to info.
func New(appName, level, format string) *logrus.Logger {
	return NewWithOutput(os.Stdout, appName, level, format)
}

func NewWithOutput(w io.Writer, appName, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if appName != "" {
		l.AddHook(&appNameHook{appName})
	}
	if err != nil && level != "" {
		l.Warnf("invalid LOG_LEVEL %q, defaulting to info", level)
	}
	return l
}
