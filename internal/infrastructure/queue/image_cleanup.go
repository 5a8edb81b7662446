package queue

import (
	"context"
	"hash/fnv"
	"io"

	"github.com/rs/zerolog"

	"github.com/merrbio/marketplace-api/internal/core/service"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AsyncImageStore decorates an ImageStore so that deletions happen off the
// request path. Uploads pass straight through; Delete enqueues the object URL
// and returns immediately. URLs are routed to a fixed set of workers using
// consistent hashing, so repeated deletions of the same object stay ordered.
type AsyncImageStore struct {
	store   service.ImageStore
	workers []chan string
	log     zerolog.Logger
}

// NewAsyncImageStore creates an AsyncImageStore with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewAsyncImageStore(store service.ImageStore, numWorkers int, log zerolog.Logger) *AsyncImageStore {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &AsyncImageStore{
		store:   store,
		workers: make([]chan string, numWorkers),
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan string, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (s *AsyncImageStore) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
}

// Upload delegates to the wrapped store.
func (s *AsyncImageStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	return s.store.Upload(ctx, filename, contentType, r)
}

// Delete enqueues the object for removal and never blocks the caller beyond
// channelBuffer capacity. Failures are logged by the worker; a lost delete
// leaves an orphaned object, never a broken product.
func (s *AsyncImageStore) Delete(_ context.Context, imageURL string) error {
	if imageURL == "" {
		return nil
	}
	s.workers[s.shardIndex(imageURL)] <- imageURL
	return nil
}

// shardIndex maps an object URL deterministically to a worker index.
func (s *AsyncImageStore) shardIndex(imageURL string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(imageURL))
	return int(h.Sum32()) % len(s.workers)
}

func (s *AsyncImageStore) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case imageURL, ok := <-ch:
			if !ok {
				return
			}
			if err := s.store.Delete(ctx, imageURL); err != nil {
				s.log.Error().Err(err).
					Str("image_url", imageURL).
					Int("worker_id", id).
					Msg("image cleanup failed")
			}
		}
	}
}
