package invoker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mosaicdesk/bridge/internal/logging"
	"github.com/mosaicdesk/bridge/internal/monitoring"
	"github.com/mosaicdesk/bridge/internal/types"
)

// Invoker is the single boundary between callers and external capabilities.
// It evaluates declared preconditions, calls the capability at most once,
// and converts every error and panic into a failed Result. Invoke never
// returns a Go error and never re-raises: callers only ever see an outcome.
//
// The invoker holds no state between calls; each invocation is independent
// and no retry is ever attempted, since the wrapped capability may mutate a
// shared document or consume a service quota.
type Invoker struct {
	registry *Registry
	log      *logging.Logger
	metrics  *monitoring.Metrics
}

// Option configures an Invoker
type Option func(*Invoker)

// WithLogger attaches a logger
func WithLogger(log *logging.Logger) Option {
	return func(inv *Invoker) { inv.log = log }
}

// WithMetrics attaches an invocation metrics collector
func WithMetrics(m *monitoring.Metrics) Option {
	return func(inv *Invoker) { inv.metrics = m }
}

// New creates an invoker over a registry
func New(registry *Registry, opts ...Option) *Invoker {
	inv := &Invoker{
		registry: registry,
		log:      logging.NewDefault(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Registry exposes the underlying registry for listing and discovery.
func (inv *Invoker) Registry() *Registry {
	return inv.registry
}

// Invoke runs a single invocation request to an outcome.
func (inv *Invoker) Invoke(ctx context.Context, req types.Request, ictx *types.Context) *types.Result {
	id := uuid.NewString()
	start := time.Now()

	result := inv.invoke(ctx, req, ictx)

	duration := time.Since(start)
	inv.record(req.Capability, result, duration)

	fields := []zap.Field{
		zap.String("invocation_id", id),
		zap.String("capability", req.Capability),
		zap.Duration("duration", duration),
	}
	if result.Success {
		inv.log.Info("invocation succeeded", fields...)
	} else {
		fields = append(fields,
			zap.String("reason", result.Reason()),
			zap.String("kind", string(result.Kind)),
		)
		inv.log.Warn("invocation failed", fields...)
	}

	return result
}

func (inv *Invoker) invoke(ctx context.Context, req types.Request, ictx *types.Context) (result *types.Result) {
	// Nothing past this point may escape as a panic or error.
	defer func() {
		if r := recover(); r != nil {
			result = types.UnexpectedFailure(fmt.Sprintf("%v", r))
		}
	}()

	provider, err := inv.registry.Resolve(req.Capability)
	if err != nil {
		return types.UnexpectedFailure(err.Error())
	}

	// Preconditions run in declaration order; the first unmet one blocks
	// the invocation before any external call is attempted.
	if guarded, ok := provider.(Guarded); ok {
		for _, cond := range guarded.Conditions(req.Capability) {
			if cond.Check == nil {
				continue
			}
			if err := cond.Check(ctx, ictx); err != nil {
				return types.PreconditionFailure(cond)
			}
		}
	}

	res, err := provider.Execute(ctx, req.Capability, req.Params, ictx)
	if err != nil && res == nil {
		return externalFailure(err.Error())
	}
	if res == nil {
		return types.UnexpectedFailure(fmt.Sprintf("capability %s returned no outcome", req.Capability))
	}
	if !res.Success && res.Kind == "" {
		res.Kind = types.FailExternal
	}
	return res
}

func (inv *Invoker) record(capability string, result *types.Result, duration time.Duration) {
	if inv.metrics == nil {
		return
	}
	status := "success"
	kind := ""
	if !result.Success {
		status = "failure"
		kind = string(result.Kind)
	}
	inv.metrics.RecordInvocation(capability, status, kind, duration)
}

func externalFailure(message string) *types.Result {
	msg := message
	return &types.Result{Success: false, Error: &msg, Kind: types.FailExternal}
}
