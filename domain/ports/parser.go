package ports

import "github.com/scenebridge/scenebridge/domain/entities"

// ConfigParser decodes a raw config file over the supplied base config.
type ConfigParser interface {
	Parse(data []byte, base entities.Config) (*entities.Config, error)
}

// PayloadValidator checks a raw request body against a named wire schema.
type PayloadValidator interface {
	ValidatePayload(name string, payload []byte) error
}
