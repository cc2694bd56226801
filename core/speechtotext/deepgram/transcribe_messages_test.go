package deepgram

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/mzorec/vesna-core/core/speechtotext"
)

func resultMessage(transcript string, isFinal, speechFinal bool) []byte {
	return fmt.Appendf(nil,
		`{"type":"Results","is_final":%t,"speech_final":%t,`+
			`"channel":{"alternatives":[{"transcript":%q}]}}`,
		isFinal, speechFinal, transcript)
}

type transcriptRecorder struct {
	mu       sync.Mutex
	partials []string
	finals   []string
}

func (r *transcriptRecorder) options(continuous bool) speechtotext.SessionOptions {
	return speechtotext.SessionOptions{
		Continuous: continuous,
		PartialTranscriptCallback: func(transcript string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.partials = append(r.partials, transcript)
		},
		TranscriptCallback: func(transcript string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.finals = append(r.finals, transcript)
		},
	}
}

func (r *transcriptRecorder) recorded() (partials, finals []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.partials...), append([]string{}, r.finals...)
}

func TestProcessMessageAssemblesUtteranceAcrossSegments(t *testing.T) {
	recorder := &transcriptRecorder{}
	s := &session{options: recorder.options(true)}

	ctx := context.Background()
	s.processMessage(ctx, resultMessage("turn on", false, false))
	s.processMessage(ctx, resultMessage("turn on the", true, false))
	s.processMessage(ctx, resultMessage("lights", false, false))
	s.processMessage(ctx, resultMessage("lights please", true, true))

	partials, finals := recorder.recorded()
	expectedPartials := []string{
		"turn on",
		"turn on the",
		"turn on the lights",
		"turn on the lights please",
	}
	if len(partials) != len(expectedPartials) {
		t.Fatalf("expected partials %v, got %v", expectedPartials, partials)
	}
	for i, partial := range expectedPartials {
		if partials[i] != partial {
			t.Fatalf("expected partials %v, got %v", expectedPartials, partials)
		}
	}

	if len(finals) != 1 || finals[0] != "turn on the lights please" {
		t.Fatalf("expected the assembled utterance, got %v", finals)
	}
}

func TestProcessMessageUtteranceEndFlushesPendingSegments(t *testing.T) {
	recorder := &transcriptRecorder{}
	s := &session{options: recorder.options(true)}

	ctx := context.Background()
	s.processMessage(ctx, resultMessage("hello there", true, false))
	s.processMessage(ctx, []byte(`{"type":"UtteranceEnd"}`))

	_, finals := recorder.recorded()
	if len(finals) != 1 || finals[0] != "hello there" {
		t.Fatalf("expected the pending segment to be flushed, got %v", finals)
	}
}

func TestProcessMessageUtteranceEndWithoutPendingIsIgnored(t *testing.T) {
	recorder := &transcriptRecorder{}
	s := &session{options: recorder.options(true)}

	s.processMessage(context.Background(), []byte(`{"type":"UtteranceEnd"}`))

	_, finals := recorder.recorded()
	if len(finals) != 0 {
		t.Fatalf("expected no utterance without pending segments, got %v", finals)
	}
}

func TestProcessMessageEmptyFinalSegmentIsDropped(t *testing.T) {
	recorder := &transcriptRecorder{}
	s := &session{options: recorder.options(true)}

	ctx := context.Background()
	s.processMessage(ctx, resultMessage("  ", true, false))
	s.processMessage(ctx, resultMessage("hello", true, true))

	_, finals := recorder.recorded()
	if len(finals) != 1 || finals[0] != "hello" {
		t.Fatalf("expected only the non-empty segment, got %v", finals)
	}
}

func TestProcessMessageSingleShotSessionClosesAfterUtterance(t *testing.T) {
	recorder := &transcriptRecorder{}
	s := &session{options: recorder.options(false)}

	s.processMessage(context.Background(), resultMessage("what time is it", true, true))

	if !s.closed.Load() {
		t.Fatalf("expected a single-shot session to close after the utterance")
	}
}
