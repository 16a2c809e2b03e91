package pbr

import (
	"image"

	"pbrconvert/material"
)

// Options configures Process
type Options struct {
	Normal NormalOptions
}

// Artifacts is everything derived from one source texture
type Artifacts struct {
	Identifier     string
	Classification material.Classification
	MER            *image.NRGBA
	Normal         *image.NRGBA
	// NormalSource is "procedural", "alpha" or "blue"
	NormalSource string
	Descriptor   Descriptor
}

// Process runs the material pipeline for one texture. The identifier is
// classified once and the result drives both the MER coefficients and the
// choice of normal-map algorithm. ext is the extension the descriptor uses
// for the MER and normal artifacts.
func Process(img image.Image, identifier, ext string, opts Options) (*Artifacts, error) {
	class := material.Classify(identifier)

	mer, err := Remap(img, class.Coefficients)
	if err != nil {
		return nil, WrapError(identifier, err)
	}

	liquid := class.Category.IsLiquid()
	normal, err := SynthesizeNormal(img, liquid, opts.Normal)
	if err != nil {
		return nil, WrapError(identifier, err)
	}

	source := "procedural"
	if !liquid {
		b, err := selectBasis(img)
		if err != nil {
			return nil, WrapError(identifier, err)
		}
		source = b.String()
	}

	return &Artifacts{
		Identifier:     identifier,
		Classification: class,
		MER:            mer,
		Normal:         normal,
		NormalSource:   source,
		Descriptor:     NewDescriptor(identifier, ext),
	}, nil
}
