// Package config loads and validates plugin configuration.
package config

import (
	stdErrors "errors"
	"fmt"
	"net"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/scenebridge/scenebridge/domain/entities"
	"github.com/scenebridge/scenebridge/domain/errors"
	"github.com/scenebridge/scenebridge/domain/ports"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("loopback", isLoopback)
	return v
}

func isLoopback(fl validator.FieldLevel) bool {
	ip := net.ParseIP(fl.Field().String())
	return ip != nil && ip.IsLoopback()
}

// Validate checks cfg against its validation tags. The first failing field
// is reported as *errors.ConfigError.
func Validate(cfg *entities.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if stdErrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &errors.ConfigError{Field: fe.Field(), Err: describe(fe)}
	}
	return &errors.ConfigError{Err: err}
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "loopback":
		return fmt.Errorf("%v is not a loopback address", fe.Value())
	case "required":
		return fmt.Errorf("value is required")
	case "oneof":
		return fmt.Errorf("%v is not one of [%s]", fe.Value(), fe.Param())
	case "min", "max":
		return fmt.Errorf("%v violates %s=%s", fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("%v fails %s", fe.Value(), fe.Tag())
	}
}

// Parse decodes data over the defaults with p and validates the result.
func Parse(p ports.ConfigParser, data []byte, opts ...entities.ConfigOption) (*entities.Config, error) {
	cfg, err := p.Parse(data, entities.NewConfig(opts...))
	if err != nil {
		return nil, &errors.ConfigError{Err: err}
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config file at path. An empty path yields the validated
// defaults with opts applied.
func Load(p ports.ConfigParser, path string, opts ...entities.ConfigOption) (*entities.Config, error) {
	if path == "" {
		cfg := entities.NewConfig(opts...)
		if err := Validate(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(p, data, opts...)
}
