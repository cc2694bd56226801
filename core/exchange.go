package orchestration

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/mzorec/vesna-core/core/llms"
)

// exchange tracks a single user message travelling through the session: the
// model stream, collected citations and the cancellation handshake between
// the processing goroutine and interrupts.
type exchange struct {
	id uuid.UUID

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	citations []llms.Citation
	seen      map[string]struct{}

	cancelled atomic.Bool

	settled    chan struct{}
	settleOnce sync.Once
}

func newExchange(ctx context.Context) *exchange {
	ctx, cancel := context.WithCancel(ctx)
	return &exchange{
		id:      uuid.New(),
		ctx:     ctx,
		cancel:  cancel,
		seen:    map[string]struct{}{},
		settled: make(chan struct{}),
	}
}

// Cancel requests cooperative cancellation. The exchange context is
// cancelled so in-flight streams unblock; the processing side observes the
// flag at chunk boundaries and rolls back.
func (e *exchange) Cancel() {
	e.cancelled.Store(true)
	e.cancel()
}

func (e *exchange) isCancelled() bool {
	return e.cancelled.Load()
}

// settle marks the exchange as fully resolved. Safe to call more than once.
func (e *exchange) settle() {
	e.settleOnce.Do(func() {
		close(e.settled)
		e.cancel()
	})
}

func (e *exchange) awaitSettled(ctx context.Context) {
	select {
	case <-e.settled:
	case <-ctx.Done():
	}
}

// mergeCitations folds newly reported citations into the exchange,
// de-duplicating by URI. The first occurrence of a URI wins.
func (e *exchange) mergeCitations(citations []llms.Citation) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, citation := range citations {
		if citation.URI == "" {
			continue
		}
		if _, ok := e.seen[citation.URI]; ok {
			continue
		}
		e.seen[citation.URI] = struct{}{}
		e.citations = append(e.citations, citation)
	}
}

func (e *exchange) citationSnapshot() []llms.Citation {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.citations) == 0 {
		return nil
	}

	citations := []llms.Citation{}
	if err := copier.Copy(&citations, &e.citations); err != nil {
		return nil
	}
	return citations
}
