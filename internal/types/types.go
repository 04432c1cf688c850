package types

import "context"

// Category represents capability categories
type Category string

const (
	CategoryCanvas    Category = "canvas"
	CategoryWriter    Category = "writer"
	CategoryScraper   Category = "scraper"
	CategoryThumbnail Category = "thumbnail"
)

// Service represents a capability provider definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a single invocable capability
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Condition is a named precondition over injected host or service state.
// Check returns nil when the condition holds. Hint is surfaced to users
// when the condition blocks an invocation ("select an item first").
type Condition struct {
	ID    string
	Hint  string
	Check func(ctx context.Context, ictx *Context) error
}

// Context carries per-invocation metadata. Host and service state is never
// read from globals; providers receive their collaborators at construction
// and this context only identifies the caller.
type Context struct {
	Origin   string  `json:"origin,omitempty"` // "cli", "script", "http"
	ScriptID *string `json:"script_id,omitempty"`
	TraceID  string  `json:"trace_id,omitempty"`
}

// Request is an invocation request: one capability, one parameter set.
// Construct with NewRequest so the parameter map cannot be mutated by the
// caller after submission.
type Request struct {
	Capability string                 `json:"capability"`
	Params     map[string]interface{} `json:"params"`
}

// NewRequest builds a request with a defensive copy of params.
func NewRequest(capability string, params map[string]interface{}) Request {
	copied := make(map[string]interface{}, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return Request{Capability: capability, Params: copied}
}

// FailureKind classifies why an invocation failed
type FailureKind string

const (
	FailPrecondition FailureKind = "precondition"
	FailExternal     FailureKind = "external"
	FailUnexpected   FailureKind = "unexpected"
)

// Result represents an invocation outcome. Exactly one is produced per
// invocation and it is never mutated after creation: either Success with
// Data, or a failure with Error text and a Kind.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
	Kind    FailureKind            `json:"kind,omitempty"`
	Hint    string                 `json:"hint,omitempty"`
}

// Reason returns the failure reason or empty string on success.
func (r *Result) Reason() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}

// Success creates a successful result wrapping the capability's return value.
func Success(data map[string]interface{}) (*Result, error) {
	return &Result{Success: true, Data: data}, nil
}

// Failure creates a failed result with an external-call kind. Providers
// report their own failures through this; the invoker classifies anything
// else it catches.
func Failure(message string) (*Result, error) {
	msg := message
	return &Result{Success: false, Error: &msg, Kind: FailExternal}, nil
}

// PreconditionFailure creates a failed result for an unmet condition.
func PreconditionFailure(cond Condition) *Result {
	msg := cond.ID + " not satisfied"
	return &Result{Success: false, Error: &msg, Kind: FailPrecondition, Hint: cond.Hint}
}

// UnexpectedFailure creates a failed result for orchestration errors.
func UnexpectedFailure(message string) *Result {
	msg := message
	return &Result{Success: false, Error: &msg, Kind: FailUnexpected}
}
