package jobs

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/Chaukil/scanchi/extractor"
	"github.com/Chaukil/scanchi/logger"
	"github.com/Chaukil/scanchi/models"
	"github.com/Chaukil/scanchi/ocr"
)

// ScanJob is one queued recognition request. The worker owns the file at
// Path and removes it when the job finishes.
type ScanJob struct {
	Path       string
	Generation uint64
}

// ScanUpdate is broadcast to SSE subscribers when a scan finishes. Either
// Candidates or Code/Error is set.
type ScanUpdate struct {
	Generation uint64                   `json:"generation"`
	Candidates []models.CandidateRecord `json:"candidates,omitempty"`
	Code       string                   `json:"code,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// ScanWorker processes scan jobs one at a time in the background. Each
// accepted Enqueue bumps a generation counter; a result whose generation is
// no longer current was superseded by a newer capture and is dropped instead
// of broadcast.
type ScanWorker struct {
	jobs       chan ScanJob
	recognizer ocr.Recognizer

	// genMu makes bumping the generation and handing the job to the queue
	// one step, so a rejected job can never supersede an accepted one.
	genMu      sync.Mutex
	generation atomic.Uint64

	subMux      sync.RWMutex
	subscribers map[chan ScanUpdate]bool
}

// NewScanWorker starts a worker backed by the given recognizer.
func NewScanWorker(recognizer ocr.Recognizer) *ScanWorker {
	w := &ScanWorker{
		jobs:        make(chan ScanJob, 16),
		recognizer:  recognizer,
		subscribers: make(map[chan ScanUpdate]bool),
	}
	go w.run()
	logger.Info("scan worker started")
	return w
}

// Enqueue queues a recognition job for the uploaded file and returns its
// generation. A full queue rejects the job without advancing the generation,
// so jobs already queued or in flight stay current.
func (w *ScanWorker) Enqueue(path string) (uint64, bool) {
	w.genMu.Lock()
	defer w.genMu.Unlock()

	gen := w.generation.Load() + 1
	select {
	case w.jobs <- ScanJob{Path: path, Generation: gen}:
		w.generation.Store(gen)
		logger.Info("scan job enqueued", "generation", gen, "path", path)
		return gen, true
	default:
		logger.Warn("scan queue full, rejecting job", "path", path)
		os.Remove(path)
		return 0, false
	}
}

// Subscribe registers a channel to receive scan updates.
func (w *ScanWorker) Subscribe(ch chan ScanUpdate) {
	w.subMux.Lock()
	defer w.subMux.Unlock()
	w.subscribers[ch] = true
}

// Unsubscribe removes a channel and closes it.
func (w *ScanWorker) Unsubscribe(ch chan ScanUpdate) {
	w.subMux.Lock()
	defer w.subMux.Unlock()
	delete(w.subscribers, ch)
	close(ch)
}

func (w *ScanWorker) run() {
	for job := range w.jobs {
		w.processJob(job)
	}
}

func (w *ScanWorker) processJob(job ScanJob) {
	defer os.Remove(job.Path)

	// A newer capture already superseded this one.
	if job.Generation != w.generation.Load() {
		logger.Info("discarding stale scan job", "generation", job.Generation)
		return
	}

	update := ScanUpdate{Generation: job.Generation}

	res, err := w.recognizer.Recognize(job.Path)
	if err != nil {
		logger.Error("recognition failed", "generation", job.Generation, "error", err)
		update.Code = "recognition_failed"
		update.Error = err.Error()
		w.broadcast(update)
		return
	}

	candidates, err := extractor.Extract(res)
	if err != nil {
		update.Code = ErrorCode(err)
		update.Error = err.Error()
	} else {
		update.Candidates = candidates
	}

	// Re-check after the slow part: the user may have started a new scan
	// while this one was recognizing.
	if job.Generation != w.generation.Load() {
		logger.Info("discarding stale scan result", "generation", job.Generation)
		return
	}
	w.broadcast(update)
}

func (w *ScanWorker) broadcast(update ScanUpdate) {
	w.subMux.RLock()
	defer w.subMux.RUnlock()
	for ch := range w.subscribers {
		select {
		case ch <- update:
		default:
			logger.Warn("slow SSE subscriber, dropping scan update", "generation", update.Generation)
		}
	}
}

// ErrorCode maps extraction failures to stable machine-readable codes.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, extractor.ErrHeadersNotFound):
		return "headers_not_found"
	case errors.Is(err, extractor.ErrNoPairsFound):
		return "no_pairs_found"
	case errors.Is(err, extractor.ErrNoItemsFound):
		return "no_items_found"
	default:
		return "extraction_failed"
	}
}
