package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"pbrconvert/imageprocessor"
	"pbrconvert/logging"
	"pbrconvert/pbr"
	"pbrconvert/scanner/processor"
	"pbrconvert/types"
)

// ErrDuplicateIdentifier marks a texture whose identifier is already taken by
// another file in the same folder, e.g. stone.png and stone.tga
var ErrDuplicateIdentifier = fmt.Errorf("%w: duplicate texture identifier", pbr.ErrIOFailure)

// texturePlan is a texture scheduled for conversion
type texturePlan struct {
	path       string
	identifier string
}

// ConvertFolder converts every texture in a folder and reports per-texture
// outcomes. One texture failing never stops the others. The returned error
// is only set when the folder itself cannot be read.
func ConvertFolder(ctx context.Context, options ScanOptions) (*Report, error) {
	startTime := time.Now()
	textureProcessor := processor.NewTextureProcessor(options.DebugMode, options.Pipeline)

	paths, err := listTextures(options, textureProcessor)
	if err != nil {
		return nil, err
	}
	plans, duplicates := planTextures(paths)

	stats := countFilesToProcess(paths)
	report := &Report{Total: len(paths)}

	out := options.Progress
	if out != nil {
		PrintStartupInfo(out, stats, options)
	}

	maxWorkers := options.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var wg sync.WaitGroup
	resultsChan := make(chan ProcessTextureResult, len(paths))
	semaphore := make(chan struct{}, maxWorkers) // Limit concurrent goroutines

	progressTracker := NewProgressTracker(stats, out, report, resultsChan)

	for _, dup := range duplicates {
		resultsChan <- dup
	}

	for i, plan := range plans {
		// Acquire semaphore unless cancelled
		select {
		case <-ctx.Done():
			report.Cancelled = len(plans) - i
			logging.LogWarning("Conversion cancelled; %d textures not started", report.Cancelled)
		case semaphore <- struct{}{}:
		}
		if report.Cancelled > 0 {
			break
		}

		wg.Add(1)
		go func(p texturePlan) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release semaphore when done

			resultsChan <- convertTexture(p, options, textureProcessor)
		}(plan)
	}

	// Wait for all processing to complete
	wg.Wait()
	close(resultsChan)
	progressTracker.Wait()

	report.Elapsed = time.Since(startTime)
	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Path < report.Failures[j].Path
	})

	if options.DebugMode {
		logging.DebugLog("Conversion of %s finished in %v. Converted: %d, Skipped: %d, Failed: %d, Cancelled: %d",
			options.FolderPath, report.Elapsed, report.Converted, report.Skipped, report.Failed(), report.Cancelled)
	}

	return report, nil
}

// listTextures returns the loadable textures directly inside the folder in
// lexical order
func listTextures(options ScanOptions, textureProcessor *processor.TextureProcessor) ([]string, error) {
	entries, err := os.ReadDir(options.FolderPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read folder %s: %v", pbr.ErrIOFailure, options.FolderPath, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(options.FolderPath, entry.Name())
		if !textureProcessor.CanLoadFile(path) {
			continue
		}
		if !options.IncludeGenerated && IsGeneratedArtifact(path) {
			if options.DebugMode {
				logging.DebugLog("Ignoring generated artifact: %s", path)
			}
			continue
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// planTextures assigns identifiers. The first path claiming an identifier
// wins; later ones come back as failed results.
func planTextures(paths []string) ([]texturePlan, []ProcessTextureResult) {
	owners := make(map[string]string, len(paths))
	var plans []texturePlan
	var duplicates []ProcessTextureResult

	for _, path := range paths {
		id := processor.Identifier(path)
		if owner, taken := owners[id]; taken {
			duplicates = append(duplicates, ProcessTextureResult{
				Path:       path,
				Identifier: id,
				Error:      pbr.WrapError(id, fmt.Errorf("%w: already produced by %s", ErrDuplicateIdentifier, filepath.Base(owner))),
				IsTga:      IsTgaFile(path),
			})
			continue
		}
		owners[id] = path
		plans = append(plans, texturePlan{path: path, identifier: id})
	}

	return plans, duplicates
}

// countFilesToProcess counts and classifies files to be processed
func countFilesToProcess(paths []string) FileStats {
	stats := FileStats{totalFiles: len(paths)}
	for _, path := range paths {
		if IsTgaFile(path) {
			stats.tgaFiles++
		}
	}
	return stats
}

// convertTexture runs the pipeline for one texture and writes its artifacts
func convertTexture(plan texturePlan, options ScanOptions, textureProcessor *processor.TextureProcessor) ProcessTextureResult {
	result := ProcessTextureResult{
		Path:       plan.path,
		Identifier: plan.identifier,
		IsTga:      IsTgaFile(plan.path),
	}

	// Skip processing if the texture is already converted and unchanged
	if options.Manifest != nil && !options.ForceRewrite {
		if skipResult := checkAndSkipIfUnchanged(plan.path, plan.identifier, options); skipResult != nil {
			skipResult.IsTga = result.IsTga
			return *skipResult
		}
	}

	fileInfo, err := os.Stat(plan.path)
	if err != nil {
		result.Error = pbr.WrapError(plan.identifier, fmt.Errorf("%w: cannot stat file %s: %v", pbr.ErrIOFailure, plan.path, err))
		return result
	}

	img, artifacts, err := textureProcessor.ProcessTexture(plan.path)
	if err != nil {
		result.Error = err
		return result
	}
	result.Category = artifacts.Classification.Category

	files, err := encodeArtifacts(artifacts, imageprocessor.OutputExtension(plan.path))
	if err != nil {
		result.Error = pbr.WrapError(plan.identifier, err)
		return result
	}

	dir := filepath.Dir(plan.path)
	if err := writeArtifacts(dir, files); err != nil {
		result.Error = pbr.WrapError(plan.identifier, err)
		return result
	}

	if options.Manifest != nil {
		b := img.Bounds()
		record := types.ConversionRecord{
			SourcePath:     plan.path,
			Folder:         options.FolderPath,
			Identifier:     plan.identifier,
			Category:       string(artifacts.Classification.Category),
			Format:         GetFileFormat(plan.path),
			Width:          b.Dx(),
			Height:         b.Dy(),
			ModifiedAt:     fileInfo.ModTime().Format(time.RFC3339Nano),
			MERFile:        artifacts.Descriptor.TextureSet.MetalnessEmissiveRoughness,
			NormalFile:     artifacts.Descriptor.TextureSet.Heightmap,
			DescriptorFile: pbr.DescriptorFileName(plan.identifier),
		}
		// The artifacts are already in place; a missing row only costs a reconversion next run
		if err := options.Manifest.Record(record); err != nil {
			logging.LogWarning("Cannot record conversion of %s: %v", plan.path, err)
		}
	}

	result.Success = true
	return result
}

// encodeArtifacts renders the MER map, the normal map in PNG, TGA and the
// output format, and the descriptor
func encodeArtifacts(artifacts *pbr.Artifacts, outExt string) ([]artifactFile, error) {
	id := artifacts.Identifier

	mer, err := imageprocessor.EncodeImage(artifacts.MER, outExt)
	if err != nil {
		return nil, fmt.Errorf("cannot encode MER map: %w", err)
	}
	files := []artifactFile{{Name: pbr.MERFileName(id, outExt), Data: mer}}

	normalExts := []string{".png", ".tga"}
	if outExt != ".png" && outExt != ".tga" {
		normalExts = append(normalExts, outExt)
	}
	for _, ext := range normalExts {
		data, err := imageprocessor.EncodeImage(artifacts.Normal, ext)
		if err != nil {
			return nil, fmt.Errorf("cannot encode normal map: %w", err)
		}
		files = append(files, artifactFile{Name: pbr.NormalFileName(id, ext), Data: data})
	}

	descriptor, err := artifacts.Descriptor.Encode()
	if err != nil {
		return nil, err
	}
	files = append(files, artifactFile{Name: pbr.DescriptorFileName(id), Data: descriptor})

	return files, nil
}
