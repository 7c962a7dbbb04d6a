// Package ports defines the capabilities the scene bridge consumes from
// its host application. The host's scene graph, UI toolkit and clipboard are
// external; adapters implement these interfaces and the dispatch logic
// depends only on them.
package ports
