package processor

import (
	"fmt"
	"image"
	"path/filepath"
	"runtime/debug"
	"strings"

	"pbrconvert/imageprocessor"
	"pbrconvert/logging"
	"pbrconvert/pbr"
)

// TextureProcessor is an adapter that simplifies interactions between the
// scanner, the image loaders and the material pipeline
type TextureProcessor struct {
	DebugMode bool
	Options   pbr.Options
	registry  *imageprocessor.ImageLoaderRegistry
}

// NewTextureProcessor creates a new TextureProcessor with appropriate configuration
func NewTextureProcessor(debugMode bool, opts pbr.Options) *TextureProcessor {
	p := &TextureProcessor{
		DebugMode: debugMode,
		Options:   opts,
		registry:  imageprocessor.NewImageLoaderRegistry(),
	}
	if debugMode {
		logging.DebugLog("Loadable texture formats: %s", strings.Join(p.registry.Extensions(), " "))
	}
	return p
}

// Identifier strips the directory and extension from a texture path
func Identifier(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadImage loads a texture, turning decoder panics into ErrInvalidImage
func (p *TextureProcessor) LoadImage(path string) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := debug.Stack()
			logging.LogError("Panic during image loading: %v, file: %s\nStack trace: %s", r, path, string(stackTrace))
			img = nil
			err = fmt.Errorf("%w: panic during image loading: %v", pbr.ErrInvalidImage, r)
		}
	}()

	img, err = p.registry.LoadImage(path)
	if err != nil {
		return nil, err
	}

	if p.DebugMode {
		b := img.Bounds()
		logging.DebugLog("Loaded %s image %dx%d (%T): %s", imageprocessor.GetFileFormat(path), b.Dx(), b.Dy(), img, path)
	}
	return img, nil
}

// ProcessTexture loads path and derives its material maps. Errors carry the
// texture identifier.
func (p *TextureProcessor) ProcessTexture(path string) (image.Image, *pbr.Artifacts, error) {
	identifier := Identifier(path)

	img, err := p.LoadImage(path)
	if err != nil {
		return nil, nil, pbr.WrapError(identifier, err)
	}

	artifacts, err := pbr.Process(img, identifier, imageprocessor.OutputExtension(path), p.Options)
	if err != nil {
		return nil, nil, err
	}

	if p.DebugMode {
		logging.DebugLog("Classified %s as %s (metalness %.2f, roughness %.2f, emissiveness %.2f), normal from %s",
			identifier, artifacts.Classification.Category,
			artifacts.Classification.Coefficients.Metalness,
			artifacts.Classification.Coefficients.Roughness,
			artifacts.Classification.Coefficients.Emissiveness,
			artifacts.NormalSource)
	}

	return img, artifacts, nil
}

// CanLoadFile checks if the path has a registered loader
func (p *TextureProcessor) CanLoadFile(path string) bool {
	return p.registry.CanLoadFile(path)
}
