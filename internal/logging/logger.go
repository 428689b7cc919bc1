package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns the application logger writing to w (stderr when nil)
// with timestamps at the given level.
func New(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	}), nil
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
