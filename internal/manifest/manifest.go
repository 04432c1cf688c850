// Package manifest runs declarative invocation plans: a YAML list of
// capability steps executed strictly in order, each at most once.
package manifest

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"

	"github.com/mosaicdesk/bridge/internal/types"
)

// Step is one invocation in a manifest.
type Step struct {
	Name              string                 `yaml:"name"`
	Capability        string                 `yaml:"capability"`
	Params            map[string]interface{} `yaml:"params"`
	ContinueOnFailure bool                   `yaml:"continue_on_failure"`
}

// Manifest is an ordered invocation plan.
type Manifest struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Invoke submits a request to the capability invoker.
type Invoke func(ctx context.Context, req types.Request, ictx *types.Context) *types.Result

// StepOutcome pairs a step with its result.
type StepOutcome struct {
	Step    Step          `json:"step"`
	Result  *types.Result `json:"result"`
	Skipped bool          `json:"skipped"`
}

// Summary aggregates a manifest run.
type Summary struct {
	Manifest string        `json:"manifest"`
	Outcomes []StepOutcome `json:"outcomes"`
	Failed   int           `json:"failed"`
}

// Ok reports whether every executed step succeeded.
func (s *Summary) Ok() bool {
	return s.Failed == 0
}

// JSON renders the summary for console or API output.
func (s *Summary) JSON() (string, error) {
	data, err := sonic.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	if len(m.Steps) == 0 {
		return nil, fmt.Errorf("manifest has no steps")
	}
	for i, step := range m.Steps {
		if step.Capability == "" {
			return nil, fmt.Errorf("step %d has no capability", i+1)
		}
	}

	return &m, nil
}

// Run executes the manifest sequentially. A failed step stops the run
// unless it is marked continue_on_failure; remaining steps are reported
// as skipped so the summary always covers the whole plan.
func (m *Manifest) Run(ctx context.Context, invoke Invoke, ictx *types.Context) *Summary {
	summary := &Summary{Manifest: m.Name}

	halted := false
	for _, step := range m.Steps {
		if halted {
			summary.Outcomes = append(summary.Outcomes, StepOutcome{Step: step, Skipped: true})
			continue
		}

		result := invoke(ctx, types.NewRequest(step.Capability, step.Params), ictx)
		summary.Outcomes = append(summary.Outcomes, StepOutcome{Step: step, Result: result})

		if !result.Success {
			summary.Failed++
			if !step.ContinueOnFailure {
				halted = true
			}
		}
	}

	return summary
}
