//go:build opencv

package imageprocessor

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"pbrconvert/logging"
	"pbrconvert/pbr"
)

func init() {
	extraLoaderRegistrations = append(extraLoaderRegistrations, registerOpenCVLoaders)
}

// registerOpenCVLoaders adds formats only OpenCV can read
func registerOpenCVLoaders(r *ImageLoaderRegistry) {
	loader := NewOpenCVImageLoader()
	for _, ext := range []string{".pbm", ".pgm", ".ppm", ".pnm", ".jp2", ".ras", ".sr"} {
		r.RegisterLoader(ext, loader)
	}
	logging.LogInfo("Registered OpenCV loader for PNM, JPEG 2000 and Sun raster files")
}

// OpenCVImageLoader reads images through OpenCV's imgcodecs
type OpenCVImageLoader struct {
	BaseImageLoader
}

// NewOpenCVImageLoader creates a new OpenCV-backed loader
func NewOpenCVImageLoader() *OpenCVImageLoader {
	return &OpenCVImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{FormatPNM, FormatJP2, FormatRAS},
		},
	}
}

// LoadImage reads the file unchanged so an alpha plane survives, then
// converts the Mat to a Go image
func (l *OpenCVImageLoader) LoadImage(path string) (image.Image, error) {
	if !fileExists(path) {
		return nil, fmt.Errorf("%w: cannot open %s", pbr.ErrIOFailure, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("%w: OpenCV could not decode %s", pbr.ErrInvalidImage, path)
	}

	// ToImage only understands 8-bit mats
	switch mat.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
	default:
		return nil, fmt.Errorf("%w: unsupported OpenCV pixel type %v in %s", pbr.ErrInvalidImage, mat.Type(), path)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, newImageLoadError("failed to convert OpenCV image", path, err)
	}
	return checkDecoded(img, path)
}
