package pbr

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbrconvert/material"
)

func TestProcessTorch(t *testing.T) {
	pixels := []color.NRGBA{
		{R: 255, G: 200, B: 100, A: 255},
		{R: 17, G: 33, B: 201, A: 128},
		{R: 0, G: 1, B: 2, A: 0},
		{R: 99, G: 77, B: 55, A: 33},
	}
	src := newTestNRGBA(2, 2, func(x, y int) color.NRGBA { return pixels[y*2+x] })

	art, err := Process(src, "torch", "png", Options{Normal: DefaultNormalOptions()})
	require.NoError(t, err)

	assert.Equal(t, material.CategoryLightSource, art.Classification.Category)
	assert.Equal(t, "alpha", art.NormalSource)
	for i, in := range pixels {
		x, y := i%2, i/2
		mer := art.MER.NRGBAAt(x, y)
		assert.Equal(t, uint8(float64(in.R)*0.5), mer.R)
		assert.Equal(t, uint8(float64(in.G)*0.5), mer.G)
		assert.Equal(t, uint8(float64(in.B)*0.45), mer.B)

		normal := art.Normal.NRGBAAt(x, y)
		assert.Equal(t, color.NRGBA{R: in.A, G: in.A, B: in.A, A: 255}, normal)
	}

	assert.Equal(t, Descriptor{
		FormatVersion: "1.16.100",
		TextureSet: TextureSet{
			Color:                      "torch",
			MetalnessEmissiveRoughness: "torch_mer.png",
			Heightmap:                  "torch_normal.png",
		},
	}, art.Descriptor)
}

func TestProcessWaterUsesProceduralNormal(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))

	art, err := Process(src, "water_still", ".tga", Options{})
	require.NoError(t, err)

	assert.Equal(t, "procedural", art.NormalSource)
	assert.Equal(t, "water_still_normal.tga", art.Descriptor.TextureSet.Heightmap)
	want, err := SynthesizeNormal(src, true, DefaultNormalOptions())
	require.NoError(t, err)
	assert.Equal(t, want.Pix, art.Normal.Pix)
}

func TestProcessIsIdempotent(t *testing.T) {
	src := newTestNRGBA(4, 4, func(x, y int) color.NRGBA {
		return color.NRGBA{R: uint8(x * 60), G: uint8(y * 60), B: 200, A: 255}
	})
	a, err := Process(src, "oak_planks", "png", Options{})
	require.NoError(t, err)
	b, err := Process(src, "oak_planks", "png", Options{})
	require.NoError(t, err)

	assert.Equal(t, a.MER.Pix, b.MER.Pix)
	assert.Equal(t, a.Normal.Pix, b.Normal.Pix)
	assert.Equal(t, a.Descriptor, b.Descriptor)
}

func TestProcessErrorsNameTheTexture(t *testing.T) {
	_, err := Process(image.NewGray(image.Rect(0, 0, 2, 2)), "stone", "png", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingChannel)

	var te *TextureError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "stone", te.Identifier)
	assert.Contains(t, err.Error(), `"stone"`)

	_, err = Process(nil, "glass", "png", Options{})
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestWrapErrorKeepsExistingTextureError(t *testing.T) {
	assert.NoError(t, WrapError("a", nil))

	inner := WrapError("first", ErrIOFailure)
	outer := WrapError("second", inner)
	assert.Same(t, inner, outer)
	assert.ErrorIs(t, outer, ErrIOFailure)
}
