package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConnection marks a connection that references a missing card
	ErrInvalidConnection = errors.New("invalid connection")
	// ErrCardNotFound is returned when a card index or ID does not resolve
	ErrCardNotFound = errors.New("card not found")
	// ErrDuplicateCardID is returned when two cards share an ID
	ErrDuplicateCardID = errors.New("duplicate card id")
)

// ConfigError reports a problem found while validating a diagram
type ConfigError struct {
	Field string
	Err   error
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Field, e.Msg, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
