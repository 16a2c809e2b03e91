package pbr

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// FlatNormal is the color of an unperturbed surface
var FlatNormal = color.NRGBA{R: 128, G: 128, B: 255, A: 255}

// SynthesizeNormal builds the normal map for img. Liquid textures get a
// procedural, tileable normal map from fractal noise; everything else gets a
// grayscale map copied from a single source channel.
func SynthesizeNormal(img image.Image, liquid bool, opts NormalOptions) (*image.NRGBA, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	if liquid {
		return proceduralNormal(bounds.Dx(), bounds.Dy(), opts), nil
	}
	return channelNormal(img)
}

func newFlatNormal(width, height int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = FlatNormal.R
		out.Pix[i+1] = FlatNormal.G
		out.Pix[i+2] = FlatNormal.B
		out.Pix[i+3] = FlatNormal.A
	}
	return out
}

// proceduralNormal derives per-pixel vectors (dx, dy, 1/freq) from the height
// field using central differences that wrap at the edges. The vectors are not
// unit length; each component is mapped from [-1,1] to [0,255].
func proceduralNormal(width, height int, opts NormalOptions) *image.NRGBA {
	opts = opts.withDefaults()
	field := HeightField(width, height, opts)
	at := func(x, y int) float64 {
		x = (x%width + width) % width
		y = (y%height + height) % height
		return field[y*width+x]
	}

	dz := 1.0 / opts.Frequency
	out := newFlatNormal(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := mgl64.Vec3{
				(at(x+1, y) - at(x-1, y)) / 2.0,
				(at(x, y+1) - at(x, y-1)) / 2.0,
				dz,
			}
			rgb := n.Add(mgl64.Vec3{1, 1, 1}).Mul(0.5).Mul(255.0)

			i := out.PixOffset(x, y)
			out.Pix[i+0] = clampByte(rgb.X())
			out.Pix[i+1] = clampByte(rgb.Y())
			out.Pix[i+2] = clampByte(rgb.Z())
		}
	}
	return out
}

// basis is the source channel a static normal map is copied from
type basis int

const (
	basisAlpha basis = iota
	basisBlue
)

func (b basis) String() string {
	if b == basisAlpha {
		return "alpha"
	}
	return "blue"
}

// selectBasis prefers alpha when the color model carries one and falls back
// to blue. Premultiplied and paletted images only count as having alpha when
// some pixel is translucent, since the decoders use them for RGB sources too.
func selectBasis(img image.Image) (basis, error) {
	switch src := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA, *image.Alpha, *image.Alpha16:
		return basisAlpha, nil
	case *image.Gray, *image.Gray16:
		return 0, fmt.Errorf("%w: grayscale image has neither alpha nor blue", ErrMissingChannel)
	case *image.YCbCr, *image.CMYK:
		return basisBlue, nil
	case interface{ Opaque() bool }:
		if !src.Opaque() {
			return basisAlpha, nil
		}
		return basisBlue, nil
	}

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 0, fmt.Errorf("%w: grayscale image has neither alpha nor blue", ErrMissingChannel)
	case color.NRGBAModel, color.NRGBA64Model, color.AlphaModel, color.Alpha16Model:
		return basisAlpha, nil
	}
	return basisBlue, nil
}

// channelNormal writes the basis channel's value into R, G and B of every pixel
func channelNormal(img image.Image) (*image.NRGBA, error) {
	b, err := selectBasis(img)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	out := newFlatNormal(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			px := straightColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			v := px.B
			if b == basisAlpha {
				v = px.A
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
		}
	}
	return out, nil
}
