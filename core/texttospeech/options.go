package texttospeech

import "github.com/mzorec/vesna-core/core/audio"

type SpeakOptions struct {
	// AudioCallback is called whenever the TTS client produces a chunk of
	// audio for the utterance.
	AudioCallback func(audio []byte)
	// DoneCallback is called once the whole utterance has been synthesized.
	// It is not called when the utterance is stopped early.
	DoneCallback func()
	// ErrorCallback is called when synthesis fails partway through.
	ErrorCallback func(error)

	EncodingInfo audio.EncodingInfo
}

type SpeakOption func(*SpeakOptions)

func WithAudioCallback(callback func(audio []byte)) SpeakOption {
	return func(o *SpeakOptions) {
		o.AudioCallback = callback
	}
}

func WithDoneCallback(callback func()) SpeakOption {
	return func(o *SpeakOptions) {
		o.DoneCallback = callback
	}
}

func WithErrorCallback(callback func(error)) SpeakOption {
	return func(o *SpeakOptions) {
		o.ErrorCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) SpeakOption {
	return func(o *SpeakOptions) {
		if encodingInfo.IsZero() {
			return
		}

		o.EncodingInfo = encodingInfo
	}
}

// Utterance is a single in-flight synthesis request.
type Utterance interface {
	// Stop abandons the rest of the utterance. Audio already delivered is
	// not recalled, but no further callbacks fire after Stop returns.
	Stop()
}
