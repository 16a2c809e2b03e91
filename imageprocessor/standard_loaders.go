package imageprocessor

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"pbrconvert/pbr"
)

// decoders maps each standard format to its decoder. The tga package
// registers an empty magic string with the image package, so
// image.Decode cannot be used to sniff formats.
var decoders = map[FormatType]func(io.Reader) (image.Image, error){
	FormatPNG:  png.Decode,
	FormatJPEG: jpeg.Decode,
	FormatGIF:  gif.Decode,
	FormatBMP:  bmp.Decode,
	FormatTIFF: tiff.Decode,
	FormatWEBP: webp.Decode,
}

// StandardImageLoader handles the formats in decoders
type StandardImageLoader struct {
	BaseImageLoader
}

// NewStandardImageLoader creates a new loader for standard image formats
func NewStandardImageLoader() *StandardImageLoader {
	return &StandardImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{
				FormatPNG,
				FormatJPEG,
				FormatGIF,
				FormatBMP,
				FormatTIFF,
				FormatWEBP,
			},
		},
	}
}

// LoadImage decodes the file with the decoder for its extension
func (l *StandardImageLoader) LoadImage(path string) (image.Image, error) {
	format := GetFileFormat(path)
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %s format: %s", pbr.ErrInvalidImage, format, path)
	}

	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, newImageLoadError("failed to decode image", path, err)
	}
	return checkDecoded(img, path)
}

// TgaImageLoader handles Truevision TGA files
type TgaImageLoader struct {
	BaseImageLoader
}

// NewTgaImageLoader creates a new TGA image loader
func NewTgaImageLoader() *TgaImageLoader {
	return &TgaImageLoader{
		BaseImageLoader: BaseImageLoader{
			SupportedFormats: []FormatType{FormatTGA},
		},
	}
}

// LoadImage loads a TGA image
func (l *TgaImageLoader) LoadImage(path string) (image.Image, error) {
	data, err := readSource(path)
	if err != nil {
		return nil, err
	}

	img, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newImageLoadError("failed to decode TGA image", path, err)
	}
	return checkDecoded(img, path)
}
