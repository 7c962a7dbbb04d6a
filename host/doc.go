// Package host provides the runtime environment for executing scripts
// against the host application.
//
// Scripts are Starlark programs evaluated with a single predeclared name,
// bpy, the control handle. Every capability the handle exposes (scene
// queries, primitive insertion, clipboard, notifications) is dispatched
// through a hostfuncs registry, so the executor never touches the host
// directly and can run against any ports.Host implementation.
//
// Evaluation is unsandboxed by intent: a snippet may mutate the live host
// session without restriction. Callers are responsible for keeping the entry
// points (the loopback listener, the panel) behind a trust boundary.
package host
