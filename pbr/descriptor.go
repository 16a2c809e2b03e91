package pbr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatVersion is the texture set schema version understood by the renderer
const FormatVersion = "1.16.100"

// Artifact file name suffixes
const (
	MERSuffix        = "_mer"
	NormalSuffix     = "_normal"
	DescriptorSuffix = ".texture_set.json"
)

// Descriptor binds a color texture to its MER and normal maps
type Descriptor struct {
	FormatVersion string     `json:"format_version"`
	TextureSet    TextureSet `json:"minecraft:texture_set"`
}

// TextureSet is the body of a Descriptor
type TextureSet struct {
	Color                      string `json:"color"`
	MetalnessEmissiveRoughness string `json:"metalness_emissive_roughness"`
	Heightmap                  string `json:"heightmap"`
}

// MERFileName returns the MER artifact name for identifier; ext may omit the dot
func MERFileName(identifier, ext string) string {
	return identifier + MERSuffix + dotted(ext)
}

// NormalFileName returns the normal artifact name for identifier; ext may omit the dot
func NormalFileName(identifier, ext string) string {
	return identifier + NormalSuffix + dotted(ext)
}

// DescriptorFileName returns the descriptor artifact name for identifier
func DescriptorFileName(identifier string) string {
	return identifier + DescriptorSuffix
}

// NewDescriptor builds the descriptor for identifier with artifacts stored as ext
func NewDescriptor(identifier, ext string) Descriptor {
	return Descriptor{
		FormatVersion: FormatVersion,
		TextureSet: TextureSet{
			Color:                      identifier,
			MetalnessEmissiveRoughness: MERFileName(identifier, ext),
			Heightmap:                  NormalFileName(identifier, ext),
		},
	}
}

// Encode renders the descriptor as 4-space indented JSON without a trailing newline
func (d Descriptor) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("cannot encode descriptor for %s: %w", d.TextureSet.Color, err)
	}
	return data, nil
}

// DecodeDescriptor parses a descriptor written by Encode
func DecodeDescriptor(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("cannot decode descriptor: %w", err)
	}
	return d, nil
}

func dotted(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
