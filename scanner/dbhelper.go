package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pbrconvert/logging"
	"pbrconvert/pbr"
)

// checkAndSkipIfUnchanged returns a skip result when the manifest shows the
// texture was converted after its last modification and the descriptor is
// still on disk. It returns nil when the texture must be converted.
func checkAndSkipIfUnchanged(path, identifier string, options ScanOptions) *ProcessTextureResult {
	exists, storedModTime, err := options.Manifest.Lookup(path)
	if err != nil {
		return &ProcessTextureResult{
			Path:       path,
			Identifier: identifier,
			Success:    false,
			Error:      pbr.WrapError(identifier, fmt.Errorf("%w: manifest lookup failed: %v", pbr.ErrIOFailure, err)),
		}
	}
	if !exists {
		return nil
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return &ProcessTextureResult{
			Path:       path,
			Identifier: identifier,
			Success:    false,
			Error:      pbr.WrapError(identifier, fmt.Errorf("%w: cannot stat file %s: %v", pbr.ErrIOFailure, path, err)),
		}
	}

	// An unparsable timestamp just means we convert again
	storedTime, err := time.Parse(time.RFC3339Nano, storedModTime)
	if err != nil {
		logging.LogWarning("Cannot parse stored time %q for %s: %v", storedModTime, path, err)
		return nil
	}
	if fileInfo.ModTime().After(storedTime) {
		return nil
	}

	descriptor := filepath.Join(filepath.Dir(path), pbr.DescriptorFileName(identifier))
	if _, err := os.Stat(descriptor); err != nil {
		return nil
	}

	if options.DebugMode {
		logging.DebugLog("Skipping unchanged texture: %s", path)
	}
	return &ProcessTextureResult{
		Path:       path,
		Identifier: identifier,
		Success:    true,
		Skipped:    true,
	}
}
