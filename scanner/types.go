package scanner

import (
	"io"
	"sync"
	"time"

	"pbrconvert/material"
	"pbrconvert/pbr"
	"pbrconvert/types"
)

// Manifest remembers converted sources between runs
type Manifest interface {
	// Lookup reports whether sourcePath was converted and the source
	// modification time (RFC 3339) recorded then
	Lookup(sourcePath string) (bool, string, error)

	// Record stores a finished conversion
	Record(record types.ConversionRecord) error
}

// ScanOptions defines the options for converting a folder
type ScanOptions struct {
	FolderPath string
	// ForceRewrite converts every texture even if the manifest says it is current
	ForceRewrite bool
	DebugMode    bool
	// IncludeGenerated also converts files that look like *_mer or *_normal artifacts
	IncludeGenerated bool
	MaxWorkers       int
	Pipeline         pbr.Options
	// Manifest is optional; without it every texture is converted
	Manifest Manifest
	// Progress receives the live progress line; nil disables it
	Progress io.Writer
}

// ProcessTextureResult holds the result of converting one texture
type ProcessTextureResult struct {
	Path       string
	Identifier string
	Category   material.Category
	Success    bool
	Skipped    bool
	Error      error
	IsTga      bool
}

// Failure attributes an error to a texture
type Failure struct {
	Identifier string
	Path       string
	Err        error
}

// Report summarizes a folder conversion
type Report struct {
	Total     int
	Converted int
	Skipped   int
	// Cancelled counts textures never started because the context ended
	Cancelled int
	Failures  []Failure
	Elapsed   time.Duration
}

// Failed returns the number of textures that could not be converted
func (r *Report) Failed() int {
	return len(r.Failures)
}

// OK reports whether every texture was converted or skipped
func (r *Report) OK() bool {
	return len(r.Failures) == 0 && r.Cancelled == 0
}

// FailedIdentifiers lists the identifiers of failed textures
func (r *Report) FailedIdentifiers() []string {
	ids := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		ids = append(ids, f.Identifier)
	}
	return ids
}

// FileStats tracks information about files to be processed
type FileStats struct {
	totalFiles int
	tgaFiles   int
}

// ProgressTracker tracks progress of the conversion
type ProgressTracker struct {
	processed    int
	errors       int
	skipped      int
	tgaProcessed int
	tgaErrors    int
	ticker       *time.Ticker
	done         chan struct{}
	finished     chan struct{}
	mu           sync.Mutex
	totalFiles   int
	tgaFiles     int
	out          io.Writer
	report       *Report
}
