package script

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mosaicdesk/bridge/internal/logging"
)

// Runner executes script files sequentially: one script completes before
// the next begins, and within a script one invocation completes before the
// next is attempted.
type Runner struct {
	config Config
	invoke Invoke
	log    *logging.Logger
}

// NewRunner creates a script runner.
func NewRunner(config Config, invoke Invoke, log *logging.Logger) *Runner {
	if log == nil {
		log = logging.NewDefault()
	}
	return &Runner{config: config, invoke: invoke, log: log}
}

// FileResult pairs a script path with its execution result.
type FileResult struct {
	Path   string
	Result *Result
}

// Summary aggregates a run over multiple script files.
type Summary struct {
	Results []FileResult
	Failed  int
}

// Ok reports whether every script and every invocation succeeded.
func (s *Summary) Ok() bool {
	return s.Failed == 0
}

// RunFiles executes each script file in order. A failing script does not
// stop the run; its failure is reported in the summary.
func (r *Runner) RunFiles(ctx context.Context, paths []string) (*Summary, error) {
	summary := &Summary{}

	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			r.log.Error("script unreadable", zap.String("path", path), zap.Error(err))
			summary.Results = append(summary.Results, FileResult{Path: path, Result: &Result{Err: err}})
			summary.Failed++
			continue
		}

		rt, err := New(r.config, r.invoke)
		if err != nil {
			return nil, err
		}

		scriptID := filepath.Base(path)
		result := rt.Execute(ctx, string(source), scriptID)

		for _, entry := range result.Console {
			r.log.Info("script console",
				zap.String("script", scriptID),
				zap.String("level", entry.Level),
				zap.String("message", entry.Message),
			)
		}

		if result.Failed() {
			summary.Failed++
			r.log.Warn("script failed",
				zap.String("path", path),
				zap.Error(result.Err),
				zap.Duration("duration", result.Duration),
			)
		} else {
			r.log.Info("script completed",
				zap.String("path", path),
				zap.Int("invocations", len(result.Outcomes)),
				zap.Duration("duration", result.Duration),
			)
		}

		summary.Results = append(summary.Results, FileResult{Path: path, Result: result})
	}

	return summary, nil
}
