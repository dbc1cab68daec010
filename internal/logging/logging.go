// Package logging sets up the file logger the viewer writes beside its
// executable.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// LineFormatter renders entries as "date - LEVEL - message" lines.
type LineFormatter struct{}

// Format implements logrus.Formatter.
func (LineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	msg := e.Message
	if len(e.Data) > 0 {
		fields := make([]string, 0, len(e.Data))
		for k := range e.Data {
			fields = append(fields, k)
		}
		sort.Strings(fields)
		for i, k := range fields {
			fields[i] = fmt.Sprintf("%s=%v", k, e.Data[k])
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(fields, " "))
	}
	line := fmt.Sprintf("%s - %s - %s\n",
		e.Time.Format("2006-01-02 15:04:05"),
		strings.ToUpper(e.Level.String()),
		msg)
	return []byte(line), nil
}

// DefaultPath derives the log path from the running binary, the same
// way the settings file is found: the executable path with its
// extension swapped for ".log".
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return strings.TrimSuffix(exe, filepath.Ext(exe)) + ".log", nil
}

// Setup opens the log file for appending and returns a logger writing
// to it plus a close func. When the file cannot be opened the logger
// falls back to stderr so messages are not lost, and the error is
// returned for the caller to report.
func Setup(path string, debugLevel bool) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(LineFormatter{})
	if debugLevel {
		log.SetLevel(logrus.DebugLevel)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return log, func() {}, fmt.Errorf("opening log file %s: %w", path, err)
	}
	log.SetOutput(f)
	return log, func() { f.Close() }, nil
}

// CapturePanic logs a panic with its stack before re-raising it, so
// crashes end up in the file users can send in. Meant to be deferred
// from main.
func CapturePanic(log *logrus.Logger) {
	if r := recover(); r != nil {
		log.Errorf("panic: %v\n%s", r, debug.Stack())
		panic(r)
	}
}
