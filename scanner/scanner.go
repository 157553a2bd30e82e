package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Safari77/rupphash/imageloader"
	"github.com/Safari77/rupphash/logging"
	"github.com/Safari77/rupphash/phash"
	"github.com/Safari77/rupphash/types"
)

// ScanOptions defines the options for scanning a folder.
type ScanOptions struct {
	FolderPath  string
	MaxDistance int // Hamming distance threshold for grouping
	DebugMode   bool
	MaxWorkers  int
}

// ProcessImageResult holds the result of hashing one image.
type ProcessImageResult struct {
	Path    string
	Info    *types.ImageInfo
	Success bool
	Error   error
}

// ScanFolder walks the folder, hashes every loadable image with a bounded
// worker pool and returns the collected per-file records. Hashing happens
// fully in memory; nothing is persisted.
func ScanFolder(options ScanOptions) ([]types.ImageInfo, error) {
	registry := imageloader.NewImageLoaderRegistry()

	// Count and classify files up front so progress can be reported
	// against a known total.
	stats := countFilesToProcess(options, registry)
	printStartupInfo(stats, options)

	resultsChan := make(chan ProcessImageResult, 100)
	if options.MaxWorkers < 1 {
		options.MaxWorkers = 1
	}
	semaphore := make(chan struct{}, options.MaxWorkers)

	tracker := setupProgressTracker(stats, resultsChan)
	defer tracker.stop()

	startTime := time.Now()

	var wg sync.WaitGroup
	err := filepath.Walk(options.FolderPath, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			if err != nil && options.DebugMode {
				logging.LogError("Error accessing path %s: %v", path, err)
			}
			return nil
		}

		if !registry.CanLoadFile(path) {
			return nil
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(p string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			resultsChan <- processAndHashImage(registry, p, options)
		}(path)

		return nil
	})

	wg.Wait()
	close(resultsChan)

	// Wait for the collector to drain the channel before reading totals.
	<-tracker.drained

	printCompletionStats(tracker, startTime)
	return tracker.collected(), err
}

// FileStats tracks information about files to be processed.
type FileStats struct {
	totalFiles int
	rawFiles   int
}

func countFilesToProcess(options ScanOptions, registry *imageloader.ImageLoaderRegistry) FileStats {
	stats := FileStats{}

	if options.DebugMode {
		logging.DebugLog("Starting image scan on folder: %s", options.FolderPath)
		logging.DebugLog("Grouping distance threshold: %d bits", options.MaxDistance)
	}

	filepath.Walk(options.FolderPath, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if registry.CanLoadFile(path) {
			stats.totalFiles++
			if imageloader.IsRawFormat(path) {
				stats.rawFiles++
			}
		}
		return nil
	})

	return stats
}

func printStartupInfo(stats FileStats, options ScanOptions) {
	fmt.Printf("Starting duplicate scan...\nTotal image files to process: %d (including %d RAW files)\n",
		stats.totalFiles, stats.rawFiles)
	fmt.Printf("Grouping distance threshold: %d bits\n", options.MaxDistance)

	if options.DebugMode {
		fmt.Printf("Debug mode: enabled\n")
		logging.DebugLog("Found %d image files to process (%d RAW files)",
			stats.totalFiles, stats.rawFiles)
	}
}

func printCompletionStats(tracker *ProgressTracker, startTime time.Time) {
	elapsed := time.Since(startTime)

	fmt.Println("\nHashing complete.")
	fmt.Printf("Processed %d images in %v.\n", tracker.processed, elapsed.Round(time.Second))

	if tracker.rawProcessed > 0 {
		fmt.Printf("Successfully processed %d/%d RAW image files.\n",
			tracker.rawProcessed-tracker.rawErrors, tracker.rawFiles)
	}

	if tracker.errors > 0 {
		fmt.Printf("Encountered %d errors during hashing.\n", tracker.errors)
		fmt.Println("Check the log file for details.")
	}
}

// processAndHashImage loads one file and computes its native and canonical
// hashes along with basic file metadata.
func processAndHashImage(registry *imageloader.ImageLoaderRegistry, path string, options ScanOptions) ProcessImageResult {
	result := ProcessImageResult{
		Path:    path,
		Success: false,
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		result.Error = fmt.Errorf("cannot stat file %s: %v", path, err)
		return result
	}

	img, err := registry.LoadImage(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to load image %s: %v", path, err)
		return result
	}

	native, canonical, err := phash.ComputeCanonical(img)
	if err != nil {
		result.Error = fmt.Errorf("cannot compute hash for %s: %v", path, err)
		return result
	}

	isRaw := imageloader.IsRawFormat(path)

	// Orientation comes from exiftool, which the RAW loader already
	// depends on; skip the extra process for ordinary files. Grouping
	// never needs it: the canonical hash absorbs cardinal rotations.
	orientation := 1
	if isRaw {
		orientation = imageloader.Orientation(path)
	}

	bounds := img.Bounds()
	result.Info = &types.ImageInfo{
		Path:          path,
		Format:        strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		ModifiedAt:    fileInfo.ModTime().Format(time.RFC3339),
		Size:          fileInfo.Size(),
		Orientation:   orientation,
		IsRawFormat:   isRaw,
		NativeHash:    native,
		CanonicalHash: canonical,
	}

	if options.DebugMode {
		logging.DebugLog("Hashed %s - native: %s, canonical: %s", path, native, canonical)
	}

	result.Success = true
	return result
}
