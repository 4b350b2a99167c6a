package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger for the given environment. Local runs get readable
// text output; every other environment logs JSON. Unknown levels fall back to info.
func New(env, level string) *logrus.Logger {
	return newWithOutput(env, level, os.Stdout)
}

func newWithOutput(env, level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if env == "local" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
