package orchestration

import (
	"context"
	"strings"
	"sync"

	"github.com/mzorec/vesna-core/core/texttospeech"
)

// speechOutput is the playback facade. Each Speak supersedes the previous
// one; only callbacks for the most recent utterance fire, so a stale
// utterance can never move the session state.
type speechOutput struct {
	engine   TextToSpeech
	playback AudioPlayback

	mu         sync.Mutex
	generation uint64
	current    texttospeech.Utterance
}

// Speak synthesizes and plays text. onDone fires when the utterance has been
// fully synthesized and handed to playback, onError when synthesis fails.
// With no engine configured, or nothing to say, onDone fires immediately.
func (so *speechOutput) Speak(ctx context.Context, text string, onDone func(), onError func(error)) {
	so.mu.Lock()
	so.generation++
	generation := so.generation
	if so.current != nil {
		so.current.Stop()
		so.current = nil
	}
	so.mu.Unlock()

	if so.engine == nil || strings.TrimSpace(text) == "" {
		onDone()
		return
	}

	guard := func(f func()) func() {
		return func() {
			if so.isCurrent(generation) {
				f()
			}
		}
	}

	opts := []texttospeech.SpeakOption{
		texttospeech.WithDoneCallback(guard(onDone)),
		texttospeech.WithErrorCallback(func(err error) {
			if so.isCurrent(generation) {
				onError(err)
			}
		}),
	}
	if so.playback != nil {
		opts = append(opts,
			texttospeech.WithEncodingInfo(so.playback.EncodingInfo()),
			texttospeech.WithAudioCallback(func(audio []byte) {
				if so.isCurrent(generation) {
					_ = so.playback.SendAudio(audio)
				}
			}),
		)
	}

	utterance, err := so.engine.Speak(ctx, text, opts...)
	if err != nil {
		onError(err)
		return
	}

	so.mu.Lock()
	if generation == so.generation {
		so.current = utterance
	} else {
		utterance.Stop()
	}
	so.mu.Unlock()
}

// CancelAll stops the in-flight utterance and flushes any buffered audio.
// No completion callbacks fire for a cancelled utterance.
func (so *speechOutput) CancelAll() {
	so.mu.Lock()
	so.generation++
	current := so.current
	so.current = nil
	so.mu.Unlock()

	if current != nil {
		current.Stop()
	}
	if so.playback != nil {
		so.playback.ClearBuffer()
	}
}

func (so *speechOutput) isCurrent(generation uint64) bool {
	so.mu.Lock()
	defer so.mu.Unlock()
	return generation == so.generation
}
