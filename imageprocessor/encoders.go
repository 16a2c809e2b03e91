package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// CanEncode reports whether artifacts can be written in format
func CanEncode(format FormatType) bool {
	switch format {
	case FormatPNG, FormatTGA, FormatBMP, FormatTIFF:
		return true
	default:
		return false
	}
}

// EncodeImage encodes img in the format named by ext (".png", "tga", ...)
func EncodeImage(img image.Image, ext string) ([]byte, error) {
	format := GetFileFormat("x" + dotted(ext))

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatTGA:
		err = tga.Encode(&buf, img)
	case FormatBMP:
		err = bmp.Encode(&buf, img)
	case FormatTIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Uncompressed})
	default:
		return nil, fmt.Errorf("no encoder for %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot encode %s image: %w", format, err)
	}
	return buf.Bytes(), nil
}

func dotted(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext
	}
	return "." + ext
}
