package imageprocessor

import (
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"pbrconvert/logging"
	"pbrconvert/pbr"
)

// extraLoaderRegistrations are applied to every new registry; build-tagged
// files append to it from init
var extraLoaderRegistrations []func(*ImageLoaderRegistry)

// ImageLoaderRegistry maintains a registry of image loaders
type ImageLoaderRegistry struct {
	loaders map[string]ImageLoader
	mutex   sync.RWMutex
}

// NewImageLoaderRegistry creates a new image loader registry
func NewImageLoaderRegistry() *ImageLoaderRegistry {
	registry := &ImageLoaderRegistry{
		loaders: make(map[string]ImageLoader),
	}

	// Register standard image loaders for common formats
	registry.registerStandardLoaders()

	// Register loaders that need optional native libraries
	for _, register := range extraLoaderRegistrations {
		register(registry)
	}

	return registry
}

// registerStandardLoaders registers the pure Go loaders
func (r *ImageLoaderRegistry) registerStandardLoaders() {
	standardLoader := NewStandardImageLoader()
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"} {
		r.RegisterLoader(ext, standardLoader)
	}

	r.RegisterLoader(".tga", NewTgaImageLoader())
}

// RegisterLoader registers a new loader for a specific file extension
func (r *ImageLoaderRegistry) RegisterLoader(ext string, loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ext = strings.ToLower(ext)
	r.loaders[ext] = loader
	logging.DebugLog("Registered loader %T for %s", loader, ext)
}

// GetLoader returns the loader registered for the path's extension, or nil
func (r *ImageLoaderRegistry) GetLoader(path string) ImageLoader {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	return r.loaders[ext]
}

// CanLoadFile checks if any registered loader can handle the given file
func (r *ImageLoaderRegistry) CanLoadFile(path string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	_, ok := r.loaders[ext]
	return ok
}

// LoadImage loads an image using the appropriate registered loader
func (r *ImageLoaderRegistry) LoadImage(path string) (image.Image, error) {
	loader := r.GetLoader(path)
	if loader == nil {
		return nil, fmt.Errorf("%w: no suitable loader found for: %s", pbr.ErrInvalidImage, path)
	}

	return loader.LoadImage(path)
}

// Extensions returns the registered extensions, sorted
func (r *ImageLoaderRegistry) Extensions() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
