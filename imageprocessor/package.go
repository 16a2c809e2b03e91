// Package imageprocessor provides tools for loading texture images and
// encoding derived material maps in the formats the renderer accepts.
package imageprocessor

import "image"

// ImageLoader is the interface that all image loaders must implement
type ImageLoader interface {
	// CanLoad checks if the loader can handle the given file
	CanLoad(path string) bool

	// LoadImage loads and returns the image
	LoadImage(path string) (image.Image, error)
}
