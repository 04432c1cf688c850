// Package main is the bridge batch runner.
//
// It executes JavaScript automation scripts or YAML invocation manifests
// against the capability registry, sequentially, and exits non-zero when
// any outcome is a failure.
//
// Usage:
//
//	./bridge -scripts ./automation -pattern '**/*.js'
//	./bridge -manifest release.yaml
package main
