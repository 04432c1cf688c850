// Package providers implements the capability provider system of the
// bridge.
//
// Each provider adapts one external collaborator behind the standardized
// tool-based interface: the design-studio host (canvas) or a remote agent
// service (book, scrape, thumb). Providers declare named preconditions for
// operations that need ambient host or service state; the invoker checks
// them before any external call.
//
// Provider Interface:
//   - Definition(): Returns capability metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
//   - Conditions(): Declares preconditions per tool (optional)
//
// Example Usage:
//
//	p := canvas.NewProvider(host)
//	result, err := p.Execute(ctx, "canvas.wave", params, ictx)
package providers
