package hostfuncs

import (
	"context"
	"fmt"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/ports"
)

// ClipboardGetRequest is the request type for clipboard_get.
type ClipboardGetRequest struct{}

// ClipboardSetRequest is the request type for clipboard_set.
type ClipboardSetRequest struct {
	Text string `json:"text"`
}

// ClipboardResponse carries the clipboard contents after the call.
type ClipboardResponse struct {
	Text string `json:"text"`
}

// NotifyRequest is the request type for notify.
type NotifyRequest struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NotifyResponse echoes the level actually used.
type NotifyResponse struct {
	Level string `json:"level"`
}

// ClipboardGet binds clipboard_get to a clipboard.
func ClipboardGet(clipboard ports.Clipboard) HostFunc[ClipboardGetRequest, ClipboardResponse] {
	return func(ctx context.Context, _ ClipboardGetRequest) (ClipboardResponse, error) {
		text, err := clipboard.ReadClipboard(ctx)
		if err != nil {
			return ClipboardResponse{}, fmt.Errorf("read clipboard: %w", err)
		}
		return ClipboardResponse{Text: text}, nil
	}
}

// ClipboardSet binds clipboard_set to a clipboard.
func ClipboardSet(clipboard ports.Clipboard) HostFunc[ClipboardSetRequest, ClipboardResponse] {
	return func(ctx context.Context, req ClipboardSetRequest) (ClipboardResponse, error) {
		if err := clipboard.WriteClipboard(ctx, req.Text); err != nil {
			return ClipboardResponse{}, fmt.Errorf("write clipboard: %w", err)
		}
		return ClipboardResponse{Text: req.Text}, nil
	}
}

// Notify binds notify to a notifier. An empty level means INFO.
func Notify(notifier ports.Notifier) HostFunc[NotifyRequest, NotifyResponse] {
	return func(ctx context.Context, req NotifyRequest) (NotifyResponse, error) {
		level := entities.LevelInfo
		if req.Level != "" {
			l, err := entities.ParseNotificationLevel(req.Level)
			if err != nil {
				return NotifyResponse{}, err
			}
			level = l
		}
		notifier.Notify(ctx, level, req.Message)
		return NotifyResponse{Level: string(level)}, nil
	}
}
