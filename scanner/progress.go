package scanner

import (
	"fmt"
	"io"
	"time"

	"pbrconvert/logging"
)

// NewProgressTracker initializes the progress tracker and starts consuming results
func NewProgressTracker(stats FileStats, out io.Writer, report *Report, resultsChan <-chan ProcessTextureResult) *ProgressTracker {
	if out == nil {
		out = io.Discard
	}
	tracker := &ProgressTracker{
		ticker:     time.NewTicker(500 * time.Millisecond),
		done:       make(chan struct{}),
		finished:   make(chan struct{}),
		totalFiles: stats.totalFiles,
		tgaFiles:   stats.tgaFiles,
		out:        out,
		report:     report,
	}

	// Start progress display goroutine
	go tracker.displayProgress()

	// Start result processor goroutine
	go tracker.processResults(resultsChan)

	return tracker
}

// displayProgress shows the progress periodically
func (p *ProgressTracker) displayProgress() {
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			p.mu.Lock()
			p.printLine()
			p.mu.Unlock()
		}
	}
}

func (p *ProgressTracker) printLine() {
	if p.errors > 0 {
		fmt.Fprintf(p.out, "\rProgress: %d/%d (Skipped: %d, Errors: %d, TGA: %d/%d)",
			p.processed, p.totalFiles, p.skipped, p.errors, p.tgaProcessed, p.tgaFiles)
	} else {
		fmt.Fprintf(p.out, "\rProgress: %d/%d (Skipped: %d, TGA: %d/%d)",
			p.processed, p.totalFiles, p.skipped, p.tgaProcessed, p.tgaFiles)
	}
}

// processResults updates the tracker and the report from conversion results
func (p *ProgressTracker) processResults(resultsChan <-chan ProcessTextureResult) {
	defer close(p.finished)

	for result := range resultsChan {
		p.mu.Lock()
		p.processed++

		if result.IsTga {
			p.tgaProcessed++
		}

		switch {
		case !result.Success:
			p.errors++
			if result.IsTga {
				p.tgaErrors++
			}
			errMsg := ""
			if result.Error != nil {
				errMsg = result.Error.Error()
			}
			logging.LogTextureProcessed(result.Path, false, errMsg)
			p.report.Failures = append(p.report.Failures, Failure{
				Identifier: result.Identifier,
				Path:       result.Path,
				Err:        result.Error,
			})
		case result.Skipped:
			p.skipped++
			p.report.Skipped++
			logging.LogTextureSkipped(result.Path)
		default:
			p.report.Converted++
			logging.LogTextureProcessed(result.Path, true, "")
		}

		p.mu.Unlock()
	}
}

// Wait blocks until every result has been consumed, then stops the display
func (p *ProgressTracker) Wait() {
	<-p.finished
	p.ticker.Stop()
	close(p.done)

	p.mu.Lock()
	p.printLine()
	fmt.Fprintln(p.out)
	p.mu.Unlock()
}

// PrintStartupInfo displays information about the conversion before starting
func PrintStartupInfo(out io.Writer, stats FileStats, options ScanOptions) {
	fmt.Fprintf(out, "Starting texture conversion...\nTotal textures to process: %d (including %d TGA files)\n",
		stats.totalFiles, stats.tgaFiles)
	fmt.Fprintf(out, "Force rewrite mode: %v\n", options.ForceRewrite)

	if options.DebugMode {
		fmt.Fprintf(out, "Debug mode: enabled\n")
		logging.DebugLog("Found %d textures to process (%d TGA files) in %s",
			stats.totalFiles, stats.tgaFiles, options.FolderPath)
	}
}

// PrintCompletionStats displays statistics after the conversion
func PrintCompletionStats(out io.Writer, report *Report) {
	fmt.Fprintln(out, "\nConversion complete.")
	fmt.Fprintf(out, "Converted %d textures, skipped %d unchanged, in %v.\n",
		report.Converted, report.Skipped, report.Elapsed.Round(time.Millisecond))

	if report.Cancelled > 0 {
		fmt.Fprintf(out, "Interrupted before %d textures were started.\n", report.Cancelled)
	}

	if len(report.Failures) > 0 {
		fmt.Fprintf(out, "Failed to convert %d textures:\n", len(report.Failures))
		for _, f := range report.Failures {
			fmt.Fprintf(out, "  - %s: %v\n", f.Identifier, f.Err)
		}
		fmt.Fprintln(out, "Check the log file for details.")
	}
}
