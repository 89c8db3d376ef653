package model

import (
	"errors"
	"fmt"
)

// ErrMalformedMetadata marks a granule whose metadata is missing or unreadable
var ErrMalformedMetadata = errors.New("malformed metadata")

// ErrUnsupportedInput marks a well-formed granule this library does not handle
var ErrUnsupportedInput = errors.New("unsupported input")

// MissingElementError is returned when a required metadata field cannot be found
type MissingElementError struct {
	Attribute string
	Path      string
	Href      string
}

func (e MissingElementError) Error() string {
	return fmt.Sprintf("could not find attribute `%s` at '%s' in %s", e.Attribute, e.Path, e.Href)
}

// Unwrap lets errors.Is match ErrMalformedMetadata
func (e MissingElementError) Unwrap() error {
	return ErrMalformedMetadata
}

// UnsupportedVersionError is returned for product versions outside the allow-list
type UnsupportedVersionError struct {
	Version string
}

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported VIIRS version: %s", e.Version)
}

// Unwrap lets errors.Is match ErrUnsupportedInput
func (e UnsupportedVersionError) Unwrap() error {
	return ErrUnsupportedInput
}

// UnsupportedProductError is returned for product codes with no lookup entry
type UnsupportedProductError struct {
	Product string
}

func (e UnsupportedProductError) Error() string {
	return fmt.Sprintf("unsupported VIIRS product: %s", e.Product)
}

// Unwrap lets errors.Is match ErrUnsupportedInput
func (e UnsupportedProductError) Unwrap() error {
	return ErrUnsupportedInput
}

// Malformed wraps a description as an ErrMalformedMetadata
func Malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedMetadata, fmt.Sprintf(format, args...))
}

// Unsupported wraps a description as an ErrUnsupportedInput
func Unsupported(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedInput, fmt.Sprintf(format, args...))
}
