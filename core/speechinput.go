package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mzorec/vesna-core/core/speechtotext"
)

var (
	// ErrSpeechInputUnsupported means no speech-to-text client is configured.
	// The condition is terminal for the session; text input keeps working.
	ErrSpeechInputUnsupported = errors.New("speech input is not supported in this session")
	// ErrAudioCaptureUnavailable means the capture device could not be
	// started. Listening is aborted but the session stays usable.
	ErrAudioCaptureUnavailable = errors.New("audio capture device unavailable")
)

type speechInputCallbacks struct {
	onPartialTranscript func(transcript string)
	onUtterance         func(transcript string)
	onError             func(err error)
	onStopped           func()
}

// speechInput is the listening facade. It owns the transcription session and
// the capture device, keeps the session alive across provider-side drops,
// and lets a manual stop win the race against an automatic restart.
type speechInput struct {
	engine     SpeechToText
	capture    AudioInput
	continuous bool

	callbacks speechInputCallbacks

	mu         sync.Mutex
	session    speechtotext.Session
	active     bool
	manualStop bool
}

func (si *speechInput) isActive() bool {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.active
}

func (si *speechInput) start(ctx context.Context) error {
	if si.engine == nil {
		return ErrSpeechInputUnsupported
	}

	si.mu.Lock()
	if si.active {
		si.mu.Unlock()
		return nil
	}
	si.active = true
	si.manualStop = false
	si.mu.Unlock()

	if err := si.openSession(ctx); err != nil {
		si.mu.Lock()
		si.active = false
		si.mu.Unlock()
		return err
	}
	return nil
}

func (si *speechInput) openSession(ctx context.Context) error {
	opts := []speechtotext.SessionOption{
		speechtotext.WithContinuous(si.continuous),
		speechtotext.WithPartialTranscriptCallback(si.callbacks.onPartialTranscript),
		speechtotext.WithTranscriptCallback(si.callbacks.onUtterance),
		speechtotext.WithErrorCallback(si.callbacks.onError),
		speechtotext.WithSessionEndedCallback(func() { si.onSessionEnded(ctx) }),
	}
	if si.capture != nil {
		opts = append(opts, speechtotext.WithEncodingInfo(si.capture.EncodingInfo()))
	}

	session, err := si.engine.StartSession(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to start transcription session: %w", err)
	}

	si.mu.Lock()
	si.session = session
	si.mu.Unlock()

	if si.capture != nil {
		if err := si.capture.StartCapture(ctx, func(audio []byte) {
			_ = session.SendAudio(audio)
		}); err != nil {
			_ = session.Close()
			si.mu.Lock()
			si.session = nil
			si.mu.Unlock()
			return fmt.Errorf("%w: %w", ErrAudioCaptureUnavailable, err)
		}
	}

	return nil
}

// onSessionEnded runs when the engine reports the stream is over. Listening
// resumes with a fresh session only in continuous mode and only when the
// stop was not requested by the user; a single-shot session ends here.
func (si *speechInput) onSessionEnded(ctx context.Context) {
	si.mu.Lock()
	if si.manualStop || !si.active || !si.continuous {
		si.active = false
		si.session = nil
		si.mu.Unlock()
		if si.callbacks.onStopped != nil {
			si.callbacks.onStopped()
		}
		return
	}
	si.session = nil
	si.mu.Unlock()

	if err := si.openSession(ctx); err != nil {
		si.mu.Lock()
		si.active = false
		si.mu.Unlock()
		if si.callbacks.onError != nil {
			si.callbacks.onError(fmt.Errorf("failed to resume listening: %w", err))
		}
		if si.callbacks.onStopped != nil {
			si.callbacks.onStopped()
		}
	}
}

func (si *speechInput) stop() error {
	si.mu.Lock()
	if !si.active {
		si.mu.Unlock()
		return nil
	}
	si.manualStop = true
	session := si.session
	si.mu.Unlock()

	var errs []error
	if si.capture != nil {
		if err := si.capture.StopCapture(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop audio capture: %w", err))
		}
	}
	if session != nil {
		if err := session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close transcription session: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (si *speechInput) close() error {
	err := si.stop()
	if si.capture != nil {
		si.capture.Close()
	}
	return err
}
