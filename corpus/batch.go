package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmwithiga/tarumbeta/core"
	"github.com/mmwithiga/tarumbeta/features"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"
)

// BatchVectorizer vectorizes a large candidate pool in fixed-size batches
// on a worker pool. Every batch waits on a shared rate limiter before it
// reaches the embedder and is retried with backoff on failure.
type BatchVectorizer struct {
	vectorizer *features.Vectorizer
	pool       *ants.Pool
	limiter    *rate.Limiter
	backoff    Backoff
	batchSize  int
	logger     *slog.Logger
}

// NewBatchVectorizer creates a batch vectorizer running on pool.
// A nil limiter means no rate limit.
func NewBatchVectorizer(vectorizer *features.Vectorizer, pool *ants.Pool, limiter *rate.Limiter,
	backoff Backoff, batchSize int, logger *slog.Logger) *BatchVectorizer {
	if batchSize < 1 {
		batchSize = 1
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchVectorizer{
		vectorizer: vectorizer,
		pool:       pool,
		limiter:    limiter,
		backoff:    backoff,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Vectorize returns one blended vector per candidate, in input order.
// The first failing batch cancels the remaining ones.
func (b *BatchVectorizer) Vectorize(ctx context.Context, candidates []*core.Candidate, progress *ProgressTracker) ([][]float32, error) {
	out := make([][]float32, len(candidates))
	if len(candidates) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for start := 0; start < len(candidates); start += b.batchSize {
		end := min(start+b.batchSize, len(candidates))
		batch := candidates[start:end]
		offset := start

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			vecs, err := b.process(ctx, batch)
			if err != nil {
				b.logger.Error("batch vectorization failed", "offset", offset, "size", len(batch), "err", err)
				fail(fmt.Errorf("batch at %d: %w", offset, err))
				return
			}
			copy(out[offset:], vecs)
			if progress != nil {
				progress.Increment(len(batch))
			}
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("submit batch at %d: %w", offset, err))
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (b *BatchVectorizer) process(ctx context.Context, batch []*core.Candidate) ([][]float32, error) {
	var vecs [][]float32
	err := b.backoff.Do(ctx, func(ctx context.Context) error {
		if err := b.limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		vecs, err = b.vectorizer.VectorizeCandidates(ctx, batch)
		return err
	})
	return vecs, err
}
