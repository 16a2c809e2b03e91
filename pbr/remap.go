// Package pbr derives PBR material maps (MER and normal) from color textures.
package pbr

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"pbrconvert/material"
)

// Remap builds the packed metalness/emissive/roughness image for img.
// Red is scaled by metalness, green by emissiveness and blue by roughness;
// each product is truncated and clamped to 0-255. The result is opaque and
// has the same dimensions as img.
func Remap(img image.Image, c material.Coefficients) (*image.NRGBA, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			px := straightColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			i := out.PixOffset(x, y)
			out.Pix[i+0] = scaleChannel(px.R, c.Metalness)
			out.Pix[i+1] = scaleChannel(px.G, c.Emissiveness)
			out.Pix[i+2] = scaleChannel(px.B, c.Roughness)
			out.Pix[i+3] = 0xff
		}
	}

	return out, nil
}

// scaleChannel multiplies an 8-bit value by factor, truncating toward zero
func scaleChannel(v uint8, factor float64) uint8 {
	return clampByte(float64(v) * factor)
}

// clampByte truncates f and clamps it to the 0-255 range
func clampByte(f float64) uint8 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}

// straightColor returns the non-premultiplied 8-bit value of c
func straightColor(c color.Color) color.NRGBA {
	if nc, ok := c.(color.NRGBA); ok {
		return nc
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// checkImage rejects nil and empty images
func checkImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return fmt.Errorf("%w: zero dimensions %dx%d", ErrInvalidImage, bounds.Dx(), bounds.Dy())
	}
	return nil
}
