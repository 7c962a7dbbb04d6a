package ports

// Host bundles every capability the bridge borrows from the host application.
type Host interface {
	Scene
	Clipboard
	Notifier
}
