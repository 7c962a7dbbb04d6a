// Package entities provides the core value types of the scene bridge.
// Wire types mirror the JSON bodies served by the command listener; the
// remaining types are shared by the executor, the panel and the host ports.
package entities
