package panel

import (
	"log/slog"

	"github.com/scenebridge/scenebridge/application/activity"
	"github.com/scenebridge/scenebridge/domain/entities"
)

// Option configures a Panel.
type Option func(*Panel)

// WithVariant selects the response-field or log-keeping variant.
// Unknown variants are ignored.
func WithVariant(variant string) Option {
	return func(p *Panel) {
		switch variant {
		case entities.PanelVariantLog, entities.PanelVariantResponse:
			p.variant = variant
		}
	}
}

// WithLogCapacity sizes the activity log.
func WithLogCapacity(n int) Option {
	return func(p *Panel) {
		p.log = activity.New(n)
	}
}

// WithLogger sets the logger for operator records.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Panel) {
		if logger != nil {
			p.logger = logger
		}
	}
}
