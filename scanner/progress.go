package scanner

import (
	"fmt"
	"sync"
	"time"

	"github.com/Safari77/rupphash/imageloader"
	"github.com/Safari77/rupphash/logging"
	"github.com/Safari77/rupphash/types"
)

// ProgressTracker tracks progress of the scan and collects the per-file
// records produced by the workers.
type ProgressTracker struct {
	processed    int
	errors       int
	rawProcessed int
	rawErrors    int
	ticker       *time.Ticker
	done         chan bool
	drained      chan bool
	mu           sync.Mutex
	totalFiles   int
	rawFiles     int
	infos        []types.ImageInfo
}

// setupProgressTracker starts the progress display and result collector.
func setupProgressTracker(stats FileStats, resultsChan chan ProcessImageResult) *ProgressTracker {
	tracker := &ProgressTracker{
		ticker:     time.NewTicker(500 * time.Millisecond),
		done:       make(chan bool),
		drained:    make(chan bool),
		totalFiles: stats.totalFiles,
		rawFiles:   stats.rawFiles,
	}

	go tracker.displayProgress()
	go tracker.processResults(resultsChan)

	return tracker
}

// displayProgress shows the progress periodically.
func (p *ProgressTracker) displayProgress() {
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			p.mu.Lock()
			if p.errors > 0 {
				fmt.Printf("\rProgress: %d/%d (Errors: %d, RAW: %d/%d)",
					p.processed, p.totalFiles, p.errors, p.rawProcessed, p.rawFiles)
			} else {
				fmt.Printf("\rProgress: %d/%d (RAW: %d/%d)",
					p.processed, p.totalFiles, p.rawProcessed, p.rawFiles)
			}
			p.mu.Unlock()
		}
	}
}

// processResults updates counters and collects successful records until the
// results channel is closed, then signals drained.
func (p *ProgressTracker) processResults(resultsChan chan ProcessImageResult) {
	for result := range resultsChan {
		p.mu.Lock()
		p.processed++

		isRawFile := imageloader.IsRawFormat(result.Path)
		if isRawFile {
			p.rawProcessed++
		}

		if !result.Success {
			p.errors++
			if isRawFile {
				p.rawErrors++
			}
			if result.Error != nil {
				logging.LogImageProcessed(result.Path, false, result.Error.Error())
			}
		} else {
			if result.Info != nil {
				p.infos = append(p.infos, *result.Info)
			}
			logging.LogImageProcessed(result.Path, true, "")
		}

		p.mu.Unlock()
	}
	close(p.drained)
}

// collected returns the records gathered so far. Call only after drained is
// closed.
func (p *ProgressTracker) collected() []types.ImageInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.infos
}

// stop ends the progress display.
func (p *ProgressTracker) stop() {
	p.ticker.Stop()
	select {
	case p.done <- true:
	default:
	}
}
