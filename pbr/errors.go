package pbr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImage indicates an undecodable or zero-dimension image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrMissingChannel indicates the image has no alpha or blue channel to derive a normal map from.
	ErrMissingChannel = errors.New("missing channel")

	// ErrIOFailure indicates a source could not be read or an artifact could not be written.
	ErrIOFailure = errors.New("io failure")
)

// TextureError attributes a pipeline failure to a texture identifier
type TextureError struct {
	Identifier string
	Err        error
}

func (e *TextureError) Error() string {
	return fmt.Sprintf("texture %q: %v", e.Identifier, e.Err)
}

func (e *TextureError) Unwrap() error {
	return e.Err
}

// WrapError attaches an identifier to err. A nil err stays nil and an
// existing TextureError is returned as is.
func WrapError(identifier string, err error) error {
	if err == nil {
		return nil
	}
	var te *TextureError
	if errors.As(err, &te) {
		return err
	}
	return &TextureError{Identifier: identifier, Err: err}
}
