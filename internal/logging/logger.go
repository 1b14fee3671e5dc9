package logging

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It writes JSON lines to stdout.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	Log.SetOutput(os.Stdout)
	Log.SetLevel(logrus.InfoLevel)
}

// SetLevel changes the level of Log. An empty level leaves the current level untouched.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Log.SetLevel(parsed)
	return nil
}
