package queue

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubImageStore struct {
	uploads chan string
	deletes chan string
	delErr  error
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{
		uploads: make(chan string, 8),
		deletes: make(chan string, 8),
	}
}

func (s *stubImageStore) Upload(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	s.uploads <- filename
	return "https://example.test/" + filename, nil
}

func (s *stubImageStore) Delete(_ context.Context, imageURL string) error {
	s.deletes <- imageURL
	return s.delErr
}

func awaitString(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestAsyncImageStore_UploadPassesThrough(t *testing.T) {
	stub := newStubImageStore()
	async := NewAsyncImageStore(stub, 2, zerolog.Nop())

	url, err := async.Upload(context.Background(), "carrot.png", "image/png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://example.test/carrot.png" {
		t.Fatalf("unexpected url %q", url)
	}
	awaitString(t, stub.uploads, "carrot.png")
}

func TestAsyncImageStore_DeleteRunsOffRequestPath(t *testing.T) {
	stub := newStubImageStore()
	async := NewAsyncImageStore(stub, 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	async.Start(ctx)

	if err := async.Delete(context.Background(), "https://example.test/old.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	awaitString(t, stub.deletes, "https://example.test/old.png")
}

func TestAsyncImageStore_DeleteFailureIsSwallowed(t *testing.T) {
	stub := newStubImageStore()
	stub.delErr = errors.New("bucket unavailable")
	async := NewAsyncImageStore(stub, 1, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	async.Start(ctx)

	if err := async.Delete(context.Background(), "https://example.test/gone.png"); err != nil {
		t.Fatalf("delete should never surface worker errors, got %v", err)
	}
	awaitString(t, stub.deletes, "https://example.test/gone.png")
}

func TestAsyncImageStore_EmptyURLIsIgnored(t *testing.T) {
	stub := newStubImageStore()
	async := NewAsyncImageStore(stub, 1, zerolog.Nop())

	if err := async.Delete(context.Background(), ""); err != nil {
		t.Fatalf("delete: %v", err)
	}
	select {
	case url := <-stub.deletes:
		t.Fatalf("unexpected delete of %q", url)
	case <-time.After(50 * time.Millisecond):
	}
}
