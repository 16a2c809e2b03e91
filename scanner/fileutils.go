package scanner

import (
	"path/filepath"
	"strings"

	"pbrconvert/imageprocessor"
	"pbrconvert/pbr"
	"pbrconvert/scanner/processor"
)

// IsGeneratedArtifact reports whether path looks like an output of a
// previous run (<name>_mer.<ext> or <name>_normal.<ext>)
func IsGeneratedArtifact(path string) bool {
	id := processor.Identifier(path)
	return strings.HasSuffix(id, pbr.MERSuffix) || strings.HasSuffix(id, pbr.NormalSuffix)
}

// IsTgaFile checks if a file is a TGA texture
func IsTgaFile(path string) bool {
	return imageprocessor.IsTgaFormat(path)
}

// GetFileFormat returns the lowercase file extension without the dot
func GetFileFormat(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
