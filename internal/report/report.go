// Package report carries conversion failures to whoever asked for them.
// Fallible operations take a Reporter explicitly instead of calling a
// process wide error hook.
package report

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields describe where a failure happened.
type Fields map[string]any

// Reporter receives failures that an operation recovers from or returns.
type Reporter interface {
	Report(err error, fields Fields)
}

type discard struct{}

func (discard) Report(error, Fields) {}

// Discard drops every report.
var Discard Reporter = discard{}

// OrDiscard returns r, or Discard when r is nil.
func OrDiscard(r Reporter) Reporter {
	if r == nil {
		return Discard
	}
	return r
}

type logReporter struct {
	entry *logrus.Entry
}

// Logrus logs each report as a warning on entry.
func Logrus(entry *logrus.Entry) Reporter {
	return &logReporter{entry: entry}
}

func (l *logReporter) Report(err error, fields Fields) {
	l.entry.WithFields(logrus.Fields(fields)).WithError(err).Warn("conversion failed")
}

// Entry is one collected report.
type Entry struct {
	Err    error
	Fields Fields
}

// Collector keeps reports in memory. It is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *Collector) Report(err error, fields Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Err: err, Fields: fields})
}

// Entries returns a copy of the reports collected so far.
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Multi fans a report out to several reporters.
type Multi []Reporter

func (m Multi) Report(err error, fields Fields) {
	for _, r := range m {
		r.Report(err, fields)
	}
}
