package script

import (
	"context"
	"time"

	"github.com/mosaicdesk/bridge/internal/types"
)

// Invoke submits a request to the capability invoker. Injected so the
// runtime never depends on registry wiring and tests can fake it.
type Invoke func(ctx context.Context, req types.Request, ictx *types.Context) *types.Result

// Config defines script runtime configuration
type Config struct {
	Timeout       time.Duration // Execution timeout per script
	EnableConsole bool          // Allow console.log/warn/error
}

// DefaultConfig returns the default runtime configuration
func DefaultConfig() Config {
	return Config{
		Timeout:       30 * time.Second,
		EnableConsole: true,
	}
}

// LogEntry represents captured console output
type LogEntry struct {
	Level   string
	Message string
	Time    time.Time
}

// Result holds a script execution result
type Result struct {
	Value    interface{}
	Console  []LogEntry
	Duration time.Duration
	Err      error

	// Invocations made by the script, in order, with their outcomes.
	Outcomes []*types.Result
}

// Failed reports whether the script errored or any invocation failed.
func (r *Result) Failed() bool {
	if r.Err != nil {
		return true
	}
	for _, o := range r.Outcomes {
		if !o.Success {
			return true
		}
	}
	return false
}
