package imageprocessor

import (
	"path/filepath"
	"strings"
)

// FormatType represents a known image format type
type FormatType string

// Known image format constants
const (
	FormatUnknown FormatType = "unknown"
	FormatPNG     FormatType = "png"
	FormatJPEG    FormatType = "jpeg"
	FormatGIF     FormatType = "gif"
	FormatBMP     FormatType = "bmp"
	FormatTIFF    FormatType = "tiff"
	FormatWEBP    FormatType = "webp"
	FormatTGA     FormatType = "tga"
	FormatPNM     FormatType = "pnm"
	FormatJP2     FormatType = "jp2"
	FormatRAS     FormatType = "ras"
)

// Map of extensions to format types
var formatExtensions = map[string]FormatType{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".webp": FormatWEBP,
	".tga":  FormatTGA,

	// Only loadable with the opencv build tag
	".pbm": FormatPNM,
	".pgm": FormatPNM,
	".ppm": FormatPNM,
	".pnm": FormatPNM,
	".jp2": FormatJP2,
	".ras": FormatRAS,
	".sr":  FormatRAS,
}

// GetFileFormat returns the format type based on file extension
func GetFileFormat(path string) FormatType {
	ext := strings.ToLower(filepath.Ext(path))
	format, exists := formatExtensions[ext]
	if !exists {
		return FormatUnknown
	}
	return format
}

// IsTgaFormat checks if a file is in TGA format
func IsTgaFormat(path string) bool {
	return GetFileFormat(path) == FormatTGA
}

// OutputExtension returns the extension derived artifacts are written with
// for a source path: the source's own extension when it can be encoded,
// ".png" otherwise. The result is lower case and keeps the source spelling
// (".tif" stays ".tif").
func OutputExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if CanEncode(GetFileFormat(path)) {
		return ext
	}
	return ".png"
}
