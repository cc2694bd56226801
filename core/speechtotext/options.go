package speechtotext

import "github.com/mzorec/vesna-core/core/audio"

// Session is a live transcription stream. Audio goes in through SendAudio,
// transcripts come out through the callbacks the session was opened with.
type Session interface {
	// SendAudio forwards a chunk of caller audio to the recognizer.
	SendAudio(audio []byte) error
	// Close drains the stream and ends the session. Any transcript still
	// buffered is flushed before the session end callback fires.
	Close() error
}

type SessionOptions struct {
	// Continuous keeps the session open after an utterance ends instead of
	// treating the first utterance as the whole session.
	Continuous bool

	PartialTranscriptCallback func(transcript string)
	TranscriptCallback        func(transcript string)

	SessionEndedCallback func()
	ErrorCallback        func(err error)

	EncodingInfo audio.EncodingInfo
}

type SessionOption func(*SessionOptions)

func WithContinuous(continuous bool) SessionOption {
	return func(o *SessionOptions) {
		o.Continuous = continuous
	}
}

func WithPartialTranscriptCallback(callback func(transcript string)) SessionOption {
	return func(o *SessionOptions) {
		o.PartialTranscriptCallback = callback
	}
}

func WithTranscriptCallback(callback func(transcript string)) SessionOption {
	return func(o *SessionOptions) {
		o.TranscriptCallback = callback
	}
}

func WithSessionEndedCallback(callback func()) SessionOption {
	return func(o *SessionOptions) {
		o.SessionEndedCallback = callback
	}
}

func WithErrorCallback(callback func(err error)) SessionOption {
	return func(o *SessionOptions) {
		o.ErrorCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SessionOption {
	return func(o *SessionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
