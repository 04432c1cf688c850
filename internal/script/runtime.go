package script

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/mosaicdesk/bridge/internal/types"
)

// Runtime wraps a goja VM exposing the bridge to automation scripts.
// Scripts see a single `bridge.invoke(capability, params)` call plus a
// console; everything else is stripped. A runtime runs one script at a
// time, sequentially, like the editor scripting hosts it stands in for.
type Runtime struct {
	vm     *goja.Runtime
	config Config
	invoke Invoke

	console  []LogEntry
	outcomes []*types.Result
}

// New creates a script runtime bound to an invoke function.
func New(config Config, invoke Invoke) (*Runtime, error) {
	if invoke == nil {
		return nil, fmt.Errorf("invoke function required")
	}

	r := &Runtime{
		vm:     goja.New(),
		config: config,
		invoke: invoke,
	}

	if err := r.setupGlobals(); err != nil {
		return nil, err
	}

	return r, nil
}

// Execute runs one script to completion or timeout. scriptID labels the
// invocations the script makes.
func (r *Runtime) Execute(ctx context.Context, source, scriptID string) *Result {
	start := time.Now()

	r.console = nil
	r.outcomes = nil
	r.vm.ClearInterrupt()
	r.bindInvoke(ctx, scriptID)

	timer := time.NewTimer(r.config.Timeout)
	defer timer.Stop()

	done := make(chan struct{})
	go func() {
		select {
		case <-timer.C:
			r.vm.Interrupt("execution timeout exceeded")
		case <-ctx.Done():
			r.vm.Interrupt("context cancelled")
		case <-done:
		}
	}()

	val, err := r.vm.RunString(source)
	close(done)

	result := &Result{
		Console:  append([]LogEntry{}, r.console...),
		Outcomes: append([]*types.Result{}, r.outcomes...),
		Duration: time.Since(start),
	}

	if err != nil {
		result.Err = err
		return result
	}

	if val != nil && !goja.IsUndefined(val) && !goja.IsNull(val) {
		result.Value = val.Export()
	}

	return result
}

func (r *Runtime) setupGlobals() error {
	// Scripts get capabilities through the bridge, nothing else.
	r.vm.Set("require", goja.Undefined())
	r.vm.Set("process", goja.Undefined())
	r.vm.Set("module", goja.Undefined())
	r.vm.Set("exports", goja.Undefined())

	if r.config.EnableConsole {
		console := r.vm.NewObject()
		console.Set("log", r.makeConsoleFunc("log"))
		console.Set("warn", r.makeConsoleFunc("warn"))
		console.Set("error", r.makeConsoleFunc("error"))
		console.Set("info", r.makeConsoleFunc("info"))
		r.vm.Set("console", console)
	}

	// Timers are no-ops; scripts are strictly sequential.
	r.vm.Set("setTimeout", func(call goja.FunctionCall) goja.Value {
		return goja.Undefined()
	})
	r.vm.Set("setInterval", func(call goja.FunctionCall) goja.Value {
		return goja.Undefined()
	})

	return nil
}

// bindInvoke installs the bridge object for this execution's context.
func (r *Runtime) bindInvoke(ctx context.Context, scriptID string) {
	bridge := r.vm.NewObject()
	bridge.Set("invoke", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(r.vm.ToValue("bridge.invoke requires a capability ID"))
		}

		capability := call.Arguments[0].String()
		params := map[string]interface{}{}
		if len(call.Arguments) > 1 {
			if exported, ok := call.Arguments[1].Export().(map[string]interface{}); ok {
				params = exported
			}
		}

		ictx := &types.Context{Origin: "script", ScriptID: &scriptID}
		outcome := r.invoke(ctx, types.NewRequest(capability, params), ictx)
		r.outcomes = append(r.outcomes, outcome)

		return r.vm.ToValue(outcomeToJS(outcome))
	})
	r.vm.Set("bridge", bridge)
}

func (r *Runtime) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var msg string
		for i, arg := range call.Arguments {
			if i > 0 {
				msg += " "
			}
			msg += arg.String()
		}

		r.console = append(r.console, LogEntry{
			Level:   level,
			Message: msg,
			Time:    time.Now(),
		})

		return goja.Undefined()
	}
}

// outcomeToJS maps a Result onto the object shape scripts consume.
func outcomeToJS(res *types.Result) map[string]interface{} {
	out := map[string]interface{}{
		"success": res.Success,
	}
	if res.Success {
		out["details"] = res.Data
	} else {
		out["reason"] = res.Reason()
		out["kind"] = string(res.Kind)
		if res.Hint != "" {
			out["hint"] = res.Hint
		}
	}
	return out
}
