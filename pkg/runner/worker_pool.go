package runner

import (
	"log/slog"
	"sync"

	"github.com/cascadiacollections/fluentstatic/pkg/styles"
	"github.com/cascadiacollections/fluentstatic/pkg/stylesheet"
)

// fileJob is one file to process.
type fileJob struct {
	filePath string
}

// workerPool fans extraction out over a bounded set of goroutines. Each
// worker owns a private stylesheet registry, so the order-sensitive
// accumulator is never shared between concurrently processed files; the
// aggregation step reassembles CSS in sorted path order.
type workerPool struct {
	numWorkers int
	jobs       chan fileJob
	results    chan *styles.FileResult
	errors     chan FileError
	wg         sync.WaitGroup

	process func(filePath string, reg *stylesheet.Registry) (*styles.FileResult, error)
	logger  *slog.Logger
}

func newWorkerPool(numWorkers int, process func(string, *stylesheet.Registry) (*styles.FileResult, error), logger *slog.Logger) *workerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultConcurrency
	}
	return &workerPool{
		numWorkers: numWorkers,
		jobs:       make(chan fileJob, numWorkers*2),
		results:    make(chan *styles.FileResult, numWorkers),
		errors:     make(chan FileError, numWorkers),
		process:    process,
		logger:     logger,
	}
}

func (wp *workerPool) start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *workerPool) worker(id int) {
	defer wp.wg.Done()

	reg := stylesheet.New(stylesheet.DefaultOptions())
	for job := range wp.jobs {
		result, err := wp.process(job.filePath, reg)
		if err != nil {
			wp.errors <- FileError{FilePath: job.filePath, Err: err}
			continue
		}
		wp.logger.Debug("worker finished file",
			"worker_id", id,
			"file", job.filePath,
			"changed", result.Changed)
		wp.results <- result
	}
}

func (wp *workerPool) submit(filePath string) {
	wp.jobs <- fileJob{filePath: filePath}
}

// finish closes the job channel and, once workers drain, the output channels.
func (wp *workerPool) finish() {
	close(wp.jobs)
	go func() {
		wp.wg.Wait()
		close(wp.results)
		close(wp.errors)
	}()
}
