package orchestration

import (
	"context"
	"testing"
	"time"

	"github.com/mzorec/vesna-core/core/llms"
)

func TestExchangeCancelUnblocksContext(t *testing.T) {
	ex := newExchange(context.Background())

	ex.Cancel()

	if !ex.isCancelled() {
		t.Fatalf("expected exchange to report cancellation")
	}
	select {
	case <-ex.ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("expected exchange context to be cancelled")
	}
}

func TestExchangeSettleIsIdempotent(t *testing.T) {
	ex := newExchange(context.Background())

	ex.settle()
	ex.settle()

	done := make(chan struct{})
	go func() {
		ex.awaitSettled(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected awaitSettled to return after settle")
	}
}

func TestExchangeAwaitSettledRespectsContext(t *testing.T) {
	ex := newExchange(context.Background())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		ex.awaitSettled(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected awaitSettled to return when the caller context ends")
	}
}

func TestExchangeMergeCitationsDeduplicatesByURI(t *testing.T) {
	ex := newExchange(context.Background())

	ex.mergeCitations([]llms.Citation{
		{URI: "https://example.com/a", Title: "First"},
		{URI: ""},
	})
	ex.mergeCitations([]llms.Citation{
		{URI: "https://example.com/a", Title: "Duplicate"},
		{URI: "https://example.com/b", Title: "Second"},
	})

	citations := ex.citationSnapshot()
	if len(citations) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(citations))
	}
	if citations[0].Title != "First" {
		t.Fatalf("expected the first occurrence of a uri to win, got %q", citations[0].Title)
	}
	if citations[1].URI != "https://example.com/b" {
		t.Fatalf("expected citations in arrival order, got %q", citations[1].URI)
	}
}

func TestExchangeCitationSnapshotEmpty(t *testing.T) {
	ex := newExchange(context.Background())

	if citations := ex.citationSnapshot(); citations != nil {
		t.Fatalf("expected nil snapshot without citations, got %v", citations)
	}
}
