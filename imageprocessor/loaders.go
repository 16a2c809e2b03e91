package imageprocessor

import (
	"fmt"
	"image"
	"os"

	"pbrconvert/pbr"
)

// BaseImageLoader provides common functionality for all image loaders
type BaseImageLoader struct {
	// Formats this loader can handle
	SupportedFormats []FormatType
}

// CanLoad checks if this loader supports the file's format
func (l *BaseImageLoader) CanLoad(path string) bool {
	format := GetFileFormat(path)

	for _, supported := range l.SupportedFormats {
		if format == supported {
			return fileExists(path)
		}
	}

	return false
}

// checkDecoded rejects images that decoded to nothing
func checkDecoded(img image.Image, path string) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: decoder returned no image: %s", pbr.ErrInvalidImage, path)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero dimensions %dx%d: %s", pbr.ErrInvalidImage, b.Dx(), b.Dy(), path)
	}
	return img, nil
}

// openSource opens path, tagging failures as IO errors
func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", pbr.ErrIOFailure, path, err)
	}
	return f, nil
}

// readSource reads the whole file, tagging failures as IO errors
func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", pbr.ErrIOFailure, path, err)
	}
	return data, nil
}

// fileExists checks if a file exists and is accessible
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// newImageLoadError creates a standardized error for image loading failures
func newImageLoadError(message, path string, err error) error {
	return fmt.Errorf("%w: %s: %s: %v", pbr.ErrInvalidImage, message, path, err)
}
