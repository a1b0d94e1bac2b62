// Package cli implements the applyviz command-line interface.
//
// The commands turn job-application statistics into chart layouts and
// rendered artifacts, serve the same pipeline over HTTP, and manage the
// local cache. The CLI is built using cobra and logs with charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: statistics to SVG, PNG, PDF, JSON, DOT or terminal text
//   - layout: statistics to a reusable layout.json
//   - visualize: layout.json to rendered artifacts
//   - serve: the HTTP render service
//   - inspect: keyboard-driven hover over a layout in the terminal
//   - cache: manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the command logger. Timestamps use centisecond precision
// so pipeline stages in a single run can be told apart.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// progress logs the wall time of a long-running command once it finishes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs "msg (elapsed)", for example "Server stopped (3m12.041s)".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond)), keyvals...)
}
