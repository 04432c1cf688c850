// Package types defines the shared vocabulary of the bridge: capability
// definitions, invocation requests, preconditions, and outcome results.
//
// A Result is the only way an invocation reports back. Providers build
// them with Success/Failure; the invoker adds precondition and unexpected
// failures at the invocation boundary so raw errors never cross it.
package types
