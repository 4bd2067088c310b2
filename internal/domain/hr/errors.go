package hr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUnknownEntity = errors.New("unknown entity")
)

// NotFound wraps ErrNotFound with the entity noun, e.g. "Region not found".
func NotFound(e Entity) error {
	return fmt.Errorf("%s not found: %w", e.Singular(), ErrNotFound)
}
