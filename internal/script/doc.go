// Package script runs sandboxed JavaScript automation scripts against the
// capability invoker.
//
// The sandbox exposes exactly two surfaces: bridge.invoke(capability,
// params), which returns the invocation outcome as a plain object, and a
// console. require, process, and timers are stripped. Scripts execute
// sequentially with a per-script timeout, mirroring the editor scripting
// hosts this replaces.
package script
