// Package invoker implements the guarded capability invoker and its
// provider registry.
//
// Providers expose capabilities through a standardized tool-based
// interface and are routed by "provider.tool" IDs. Providers that need
// ambient host or service state declare named preconditions; the invoker
// evaluates them in order and refuses the invocation when one is unmet,
// without touching the external collaborator.
//
// Invocation semantics:
//   - at most one attempt, never retried
//   - preconditions first, external call second
//   - every error and panic becomes a failed Result; nothing propagates
package invoker
