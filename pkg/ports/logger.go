// Package ports defines interfaces for the collaborators storyshow depends on.
package ports

import "fmt"

// LogLevel is the minimum severity a Logger prints.
type LogLevel int

const (
	// LevelDebug is used by stages and adapters for per-component detail.
	LevelDebug LogLevel = iota
	// LevelInfo is used by the render pipeline for job progress.
	LevelInfo
	// LevelWarn reports conditions that skip work without failing the job,
	// such as rendering an empty timeline.
	LevelWarn
	// LevelError reports the failure of a render job.
	LevelError
	// LevelQuiet prints nothing.
	LevelQuiet
)

var levelNames = [...]string{"debug", "info", "warn", "error", "quiet"}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelQuiet {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name. Unknown names are an error.
func ParseLogLevel(s string) (LogLevel, error) {
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes translated, leveled messages. msg is a message key that is
// looked up in the active lexicon before args are applied.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes lines with component.
	WithComponent(component string) Logger
}
