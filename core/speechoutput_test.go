package orchestration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mzorec/vesna-core/core/audio"
	"github.com/mzorec/vesna-core/core/texttospeech"
)

type utteranceStub struct {
	mu      sync.Mutex
	stopped bool
}

func (u *utteranceStub) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stopped = true
}

func (u *utteranceStub) wasStopped() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.stopped
}

// manualTTS hands synthesis control to the test. Each Speak records its
// options so the test can fire audio, completion or failure on demand.
type manualTTS struct {
	mu         sync.Mutex
	utterances []*utteranceStub
	options    []texttospeech.SpeakOptions
}

func (e *manualTTS) Speak(_ context.Context, _ string, opts ...texttospeech.SpeakOption) (texttospeech.Utterance, error) {
	options := texttospeech.SpeakOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	utterance := &utteranceStub{}
	e.mu.Lock()
	e.utterances = append(e.utterances, utterance)
	e.options = append(e.options, options)
	e.mu.Unlock()
	return utterance, nil
}

func (e *manualTTS) utterance(i int) (*utteranceStub, texttospeech.SpeakOptions) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.utterances[i], e.options[i]
}

func (e *manualTTS) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.utterances)
}

type recordingPlayback struct {
	mu      sync.Mutex
	chunks  int
	cleared int
}

func (p *recordingPlayback) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{}
}

func (p *recordingPlayback) SendAudio(_ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chunks++
	return nil
}

func (p *recordingPlayback) ClearBuffer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleared++
}

func (p *recordingPlayback) stats() (chunks, cleared int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chunks, p.cleared
}

func TestSpeechOutputWithoutEngineCompletesImmediately(t *testing.T) {
	so := &speechOutput{}

	done := make(chan struct{}, 1)
	so.Speak(context.Background(), "hello", func() { done <- struct{}{} }, func(error) {
		t.Errorf("unexpected error callback")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected done to fire without an engine")
	}
}

func TestSpeechOutputEmptyTextCompletesImmediately(t *testing.T) {
	so := &speechOutput{engine: &manualTTS{}}

	done := make(chan struct{}, 1)
	so.Speak(context.Background(), "  ", func() { done <- struct{}{} }, func(error) {
		t.Errorf("unexpected error callback")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected done to fire for empty text")
	}
}

func TestSpeechOutputForwardsAudioToPlayback(t *testing.T) {
	engine := &manualTTS{}
	playback := &recordingPlayback{}
	so := &speechOutput{engine: engine, playback: playback}

	done := make(chan struct{}, 1)
	so.Speak(context.Background(), "hello", func() { done <- struct{}{} }, func(err error) {
		t.Errorf("unexpected error callback: %v", err)
	})

	_, options := engine.utterance(0)
	options.AudioCallback([]byte{0x01})
	options.AudioCallback([]byte{0x02})
	options.DoneCallback()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected done to fire after synthesis completes")
	}

	if chunks, _ := playback.stats(); chunks != 2 {
		t.Errorf("expected 2 audio chunks forwarded, got %d", chunks)
	}
}

func TestSpeechOutputNewUtteranceSupersedesPrevious(t *testing.T) {
	engine := &manualTTS{}
	so := &speechOutput{engine: engine}

	so.Speak(context.Background(), "first", func() {
		t.Errorf("unexpected done for the superseded utterance")
	}, func(err error) {
		t.Errorf("unexpected error for the superseded utterance: %v", err)
	})

	done := make(chan struct{}, 1)
	so.Speak(context.Background(), "second", func() { done <- struct{}{} }, func(err error) {
		t.Errorf("unexpected error callback: %v", err)
	})

	first, firstOptions := engine.utterance(0)
	if !first.wasStopped() {
		t.Errorf("expected the first utterance to be stopped")
	}

	// A late callback from the superseded utterance must be ignored.
	firstOptions.DoneCallback()

	_, secondOptions := engine.utterance(1)
	secondOptions.DoneCallback()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected done for the current utterance")
	}
}

func TestSpeechOutputCancelAllSilencesCallbacks(t *testing.T) {
	engine := &manualTTS{}
	playback := &recordingPlayback{}
	so := &speechOutput{engine: engine, playback: playback}

	so.Speak(context.Background(), "hello", func() {
		t.Errorf("unexpected done after cancel")
	}, func(err error) {
		t.Errorf("unexpected error after cancel: %v", err)
	})

	so.CancelAll()

	utterance, options := engine.utterance(0)
	if !utterance.wasStopped() {
		t.Errorf("expected the utterance to be stopped")
	}
	if _, cleared := playback.stats(); cleared != 1 {
		t.Errorf("expected the playback buffer to be flushed")
	}

	// Late callbacks from the cancelled utterance must be ignored.
	options.AudioCallback([]byte{0x01})
	options.DoneCallback()

	if chunks, _ := playback.stats(); chunks != 0 {
		t.Errorf("expected no audio after cancel, got %d chunks", chunks)
	}
	if engine.count() != 1 {
		t.Fatalf("expected a single utterance, got %d", engine.count())
	}
}
