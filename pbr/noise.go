package pbr

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// NormalOptions controls procedural normal generation for liquid textures
type NormalOptions struct {
	// Frequency divides pixel coordinates before sampling noise and sets dz = 1/Frequency.
	Frequency   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Seed        int64
}

// DefaultNormalOptions returns the parameters used for 32x32 water textures
func DefaultNormalOptions() NormalOptions {
	return NormalOptions{
		Frequency:   16,
		Octaves:     3,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Seed:        0,
	}
}

// withDefaults fills zero fields from DefaultNormalOptions
func (o NormalOptions) withDefaults() NormalOptions {
	def := DefaultNormalOptions()
	if o.Frequency <= 0 {
		o.Frequency = def.Frequency
	}
	if o.Octaves <= 0 {
		o.Octaves = def.Octaves
	}
	if o.Persistence <= 0 {
		o.Persistence = def.Persistence
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = def.Lacunarity
	}
	return o
}

// fractalNoise sums octaves of simplex noise and divides by the total
// amplitude, keeping the result roughly in [-1,1].
type fractalNoise struct {
	src         opensimplex.Noise
	octaves     int
	persistence float64
	lacunarity  float64
}

func newFractalNoise(opts NormalOptions) *fractalNoise {
	return &fractalNoise{
		src:         opensimplex.New(opts.Seed),
		octaves:     opts.Octaves,
		persistence: opts.Persistence,
		lacunarity:  opts.Lacunarity,
	}
}

func (n *fractalNoise) eval(x, y float64) float64 {
	total, amp, freq, maxAmp := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < n.octaves; i++ {
		total += n.src.Eval2(x*freq, y*freq) * amp
		maxAmp += amp
		freq *= n.lacunarity
		amp *= n.persistence
	}
	return total / maxAmp
}

// HeightField samples fractal noise on a width x height grid and min-max
// normalizes it to [0,1]. The slice is row-major. A constant field
// normalizes to all zeros.
func HeightField(width, height int, opts NormalOptions) []float64 {
	if width <= 0 || height <= 0 {
		return nil
	}
	opts = opts.withDefaults()
	noise := newFractalNoise(opts)

	field := make([]float64, width*height)
	lo, hi := math.Inf(1), math.Inf(-1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := noise.eval(float64(x)/opts.Frequency, float64(y)/opts.Frequency)
			field[y*width+x] = v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	span := hi - lo
	for i, v := range field {
		if span == 0 {
			field[i] = 0
			continue
		}
		field[i] = (v - lo) / span
	}
	return field
}
