package config

import (
	"errors"
	"fmt"

	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

var (
	ErrInvalidValue     = errors.New("config value invalid")
	ErrConfigLoadFailed = fmt.Errorf("%w: failed to load build configuration", apperrors.ErrConfig)
)

// NewErrInvalidValue returns an error for an invalid configuration value.
func NewErrInvalidValue(key string, value string) error {
	return fmt.Errorf("%w: '%s' (value: '%s')", ErrInvalidValue, key, value)
}
