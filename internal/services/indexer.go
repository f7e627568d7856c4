package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/repositories"
)

const indexQueueSize = 100

// Indexer embeds new job descriptions in the background.
type Indexer interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(jobDescriptionID uuid.UUID)
}

type indexer struct {
	jdRepo      repositories.JobDescriptionRepository
	index       JobIndex
	retry       RetryConfig
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewIndexer(
	jdRepo repositories.JobDescriptionRepository,
	index JobIndex,
	retry RetryConfig,
	concurrency int,
) Indexer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &indexer{
		jdRepo:      jdRepo,
		index:       index,
		retry:       retry,
		jobQueue:    make(chan uuid.UUID, indexQueueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Indexer.
func (w *indexer) Start(ctx context.Context) {
	if !w.index.Enabled() {
		log.Println("⚠️  Job description index disabled, indexer not started")
		return
	}

	log.Printf("🚀 Starting indexer with %d workers\n", w.concurrency)
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Indexer.
func (w *indexer) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping indexer...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Indexer stopped")
	})
}

// Enqueue implements Indexer. It never blocks: when the queue is full or the
// indexer has stopped, the job description is counted as an index failure.
// It is a no-op when the index is disabled.
func (w *indexer) Enqueue(id uuid.UUID) {
	if !w.index.Enabled() {
		return
	}

	select {
	case <-w.stopChan:
		metrics.IndexFailures.Add(1)
		log.Printf("⚠️  Indexer stopped, cannot index job description %s\n", id)
		return
	default:
	}

	select {
	case w.jobQueue <- id:
		log.Printf("📥 Job description %s queued for indexing\n", id)
	default:
		metrics.IndexFailures.Add(1)
		log.Printf("⚠️  Index queue full, dropped job description %s\n", id)
	}
}

func (w *indexer) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Indexer #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case id := <-w.jobQueue:
			if err := w.indexOne(ctx, id); err != nil {
				metrics.IndexFailures.Add(1)
				log.Printf("❌ Indexer #%d failed on %s: %v\n", workerID, id, err)
				continue
			}
			metrics.JobsIndexed.Add(1)
			log.Printf("✅ Indexer #%d indexed %s\n", workerID, id)
		}
	}
}

func (w *indexer) indexOne(ctx context.Context, id uuid.UUID) error {
	jd, err := w.jdRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = RetryDo(ctx, w.retry, func() (struct{}, error) {
		return struct{}{}, w.index.Index(ctx, jd)
	})
	return err
}
