package pbr

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticNormalUsesAlphaForRGBA(t *testing.T) {
	src := newTestNRGBA(3, 2, func(x, y int) color.NRGBA {
		return color.NRGBA{R: 10, G: 20, B: 30, A: uint8(40 + x + 10*y)}
	})

	normal, err := SynthesizeNormal(src, false, DefaultNormalOptions())
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), normal.Bounds())

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v := uint8(40 + x + 10*y)
			assert.Equal(t, color.NRGBA{R: v, G: v, B: v, A: 255}, normal.NRGBAAt(x, y))
		}
	}
}

func TestStaticNormalUsesBlueForRGB(t *testing.T) {
	// the png decoder returns an opaque *image.RGBA for RGB sources
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 1, G: 2, B: uint8(60 * (x + 2*y)), A: 255})
		}
	}

	normal, err := SynthesizeNormal(src, false, DefaultNormalOptions())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), normal.Bounds())
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}, normal.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 180, G: 180, B: 180, A: 255}, normal.NRGBAAt(1, 1))
}

func TestStaticNormalUsesBlueForYCbCr(t *testing.T) {
	src := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	for i := range src.Y {
		src.Y[i], src.Cb[i], src.Cr[i] = 100, 200, 90
	}
	want := straightColor(src.At(0, 0)).B

	normal, err := SynthesizeNormal(src, false, DefaultNormalOptions())
	require.NoError(t, err)
	assert.Equal(t, want, normal.NRGBAAt(1, 1).R)
}

func TestStaticNormalTranslucentPremultipliedUsesAlpha(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 10, G: 10, B: 10, A: 77})

	normal, err := SynthesizeNormal(src, false, DefaultNormalOptions())
	require.NoError(t, err)
	assert.Equal(t, uint8(77), normal.NRGBAAt(0, 0).B)
}

func TestStaticNormalPalettedSelection(t *testing.T) {
	opaque := color.Palette{color.NRGBA{R: 0, G: 0, B: 200, A: 255}}
	src := image.NewPaletted(image.Rect(0, 0, 1, 1), opaque)
	normal, err := SynthesizeNormal(src, false, DefaultNormalOptions())
	require.NoError(t, err)
	assert.Equal(t, uint8(200), normal.NRGBAAt(0, 0).G)

	translucent := color.Palette{color.NRGBA{R: 0, G: 0, B: 200, A: 0}}
	src = image.NewPaletted(image.Rect(0, 0, 1, 1), translucent)
	normal, err = SynthesizeNormal(src, false, DefaultNormalOptions())
	require.NoError(t, err)
	assert.Equal(t, uint8(0), normal.NRGBAAt(0, 0).G)
}

func TestStaticNormalGrayIsMissingChannel(t *testing.T) {
	_, err := SynthesizeNormal(image.NewGray(image.Rect(0, 0, 2, 2)), false, DefaultNormalOptions())
	assert.ErrorIs(t, err, ErrMissingChannel)

	_, err = SynthesizeNormal(image.NewGray16(image.Rect(0, 0, 2, 2)), false, DefaultNormalOptions())
	assert.ErrorIs(t, err, ErrMissingChannel)
}

func TestSynthesizeNormalRejectsEmptyImage(t *testing.T) {
	_, err := SynthesizeNormal(image.NewNRGBA(image.Rectangle{}), true, DefaultNormalOptions())
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestHeightFieldIsNormalizedAndDeterministic(t *testing.T) {
	first := HeightField(32, 32, DefaultNormalOptions())
	second := HeightField(32, 32, DefaultNormalOptions())
	require.Len(t, first, 32*32)
	assert.Equal(t, first, second)

	lo, hi := first[0], first[0]
	for _, v := range first {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		lo = min(lo, v)
		hi = max(hi, v)
	}
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestHeightFieldConstantFieldIsZero(t *testing.T) {
	assert.Equal(t, []float64{0}, HeightField(1, 1, DefaultNormalOptions()))
	assert.Nil(t, HeightField(0, 5, DefaultNormalOptions()))
}

func TestHeightFieldSeedChangesField(t *testing.T) {
	opts := DefaultNormalOptions()
	other := opts
	other.Seed = 99
	assert.NotEqual(t, HeightField(16, 16, opts), HeightField(16, 16, other))
}

func TestLiquidNormalIsDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))

	first, err := SynthesizeNormal(src, true, DefaultNormalOptions())
	require.NoError(t, err)
	second, err := SynthesizeNormal(src, true, DefaultNormalOptions())
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 32, 32), first.Bounds())
	assert.Equal(t, first.Pix, second.Pix)
}

func TestLiquidNormalComponentRanges(t *testing.T) {
	normal, err := SynthesizeNormal(image.NewNRGBA(image.Rect(0, 0, 32, 32)), true, DefaultNormalOptions())
	require.NoError(t, err)

	// dz = 1/16 maps to (1.0625)/2*255 = 135.47
	// |dx|,|dy| <= 0.5 keeps R and G within [63, 191]
	varied := false
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			px := normal.NRGBAAt(x, y)
			assert.Equal(t, uint8(135), px.B)
			assert.Equal(t, uint8(255), px.A)
			assert.GreaterOrEqual(t, px.R, uint8(63))
			assert.LessOrEqual(t, px.R, uint8(191))
			assert.GreaterOrEqual(t, px.G, uint8(63))
			assert.LessOrEqual(t, px.G, uint8(191))
			if px.R != 127 || px.G != 127 {
				varied = true
			}
		}
	}
	assert.True(t, varied, "expected a perturbed surface")
}

func TestLiquidNormalIgnoresSourcePixels(t *testing.T) {
	blank := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	busy := newTestNRGBA(8, 8, func(x, y int) color.NRGBA {
		return color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255}
	})

	a, err := SynthesizeNormal(blank, true, DefaultNormalOptions())
	require.NoError(t, err)
	b, err := SynthesizeNormal(busy, true, DefaultNormalOptions())
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestLiquidNormalWrapsAtEdges(t *testing.T) {
	opts := DefaultNormalOptions()
	const w, h = 6, 4
	field := HeightField(w, h, opts)
	normal := proceduralNormal(w, h, opts)

	dx := (field[0*w+1] - field[0*w+w-1]) / 2.0
	dy := (field[1*w+0] - field[(h-1)*w+0]) / 2.0
	assert.Equal(t, clampByte((dx+1)*0.5*255), normal.NRGBAAt(0, 0).R)
	assert.Equal(t, clampByte((dy+1)*0.5*255), normal.NRGBAAt(0, 0).G)
}
