package ports

import (
	"context"

	"github.com/scenebridge/scenebridge/domain/entities"
)

// Clipboard is the host window manager's system clipboard.
type Clipboard interface {
	ReadClipboard(ctx context.Context) (string, error)
	WriteClipboard(ctx context.Context, text string) error
}

// Notifier shows a notification banner in the host UI.
type Notifier interface {
	Notify(ctx context.Context, level entities.NotificationLevel, message string)
}
