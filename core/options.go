package orchestration

import (
	"context"
	"time"

	"github.com/mzorec/vesna-core/core/audio"
	"github.com/mzorec/vesna-core/core/events"
	"github.com/mzorec/vesna-core/core/intents"
	"github.com/mzorec/vesna-core/core/llms"
	"github.com/mzorec/vesna-core/core/speechtotext"
	"github.com/mzorec/vesna-core/core/texttospeech"
)

type OrchestratorOption func(*Orchestrator)

type LLMWithStream interface {
	PromptWithStream(ctx context.Context, prompt string, opts ...llms.PromptOption) llms.Stream
}

func WithStreamingLLM(client LLMWithStream) OrchestratorOption {
	return func(o *Orchestrator) {
		o.llm = client
	}
}

type SpeechToText interface {
	StartSession(ctx context.Context, opts ...speechtotext.SessionOption) (speechtotext.Session, error)
}

func WithSpeechToText(client SpeechToText) OrchestratorOption {
	return func(o *Orchestrator) {
		o.speechInput.engine = client
	}
}

type TextToSpeech interface {
	Speak(ctx context.Context, text string, opts ...texttospeech.SpeakOption) (texttospeech.Utterance, error)
}

func WithTextToSpeech(client TextToSpeech) OrchestratorOption {
	return func(o *Orchestrator) {
		o.speechOutput.engine = client
	}
}

type AudioInput interface {
	EncodingInfo() audio.EncodingInfo
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	Close()
}

func WithAudioInput(client AudioInput) OrchestratorOption {
	return func(o *Orchestrator) {
		o.speechInput.capture = client
	}
}

type AudioPlayback interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer()
}

func WithAudioPlayback(client AudioPlayback) OrchestratorOption {
	return func(o *Orchestrator) {
		o.speechOutput.playback = client
	}
}

// WithOpener sets the host hook used to open URLs for dispatched device
// commands. Without one, commands that would open a page are acknowledged
// but not performed.
func WithOpener(opener intents.Opener) OrchestratorOption {
	return func(o *Orchestrator) {
		o.dispatcher = intents.NewDispatcher(opener)
	}
}

// WithContinuousListening controls whether a listening session stays open
// across utterances. On by default; turned off, listening ends after the
// first utterance.
func WithContinuousListening(continuous bool) OrchestratorOption {
	return func(o *Orchestrator) {
		o.speechInput.continuous = continuous
	}
}

// WithClock overrides the time source used for the session greeting.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

type OrchestrateOptions struct {
	onStateChanged      func(state SessionState)
	onTranscriptUpdated func(turns []llms.Turn)
	onPartialTranscript func(transcript string)
	onResponse          func(response string)
	onError             func(err error, terminal bool)
	onIntentDispatched  func(command, note string)
	onEvent             func(event events.Event)
}

type OrchestrateOption func(*OrchestrateOptions)

// WithStateChangedCallback registers a callback for session state
// transitions. The callback only fires when the state actually changes.
func WithStateChangedCallback(callback func(state SessionState)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onStateChanged = callback
	}
}

// WithTranscriptUpdatedCallback registers a callback invoked with a full
// transcript snapshot whenever the conversation record changes.
func WithTranscriptUpdatedCallback(callback func(turns []llms.Turn)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onTranscriptUpdated = callback
	}
}

// WithPartialTranscriptCallback registers a callback for in-progress
// recognition snapshots. Each snapshot replaces the previous one.
func WithPartialTranscriptCallback(callback func(transcript string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onPartialTranscript = callback
	}
}

// WithResponseCallback registers a callback for the streaming assistant
// response. It receives the accumulated response text so far.
func WithResponseCallback(callback func(response string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onResponse = callback
	}
}

// WithErrorCallback registers a callback for component failures. Terminal
// errors mean the affected capability is gone for the rest of the session;
// everything else recovers on the next input.
func WithErrorCallback(callback func(err error, terminal bool)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onError = callback
	}
}

// WithIntentDispatchedCallback registers a callback for recognized device
// commands after dispatch. The note, when present, describes the part of
// the command that was acknowledged rather than performed.
func WithIntentDispatchedCallback(callback func(command, note string)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onIntentDispatched = callback
	}
}

// WithEventCallback registers a callback for the raw typed event stream.
// All events pass through it, including those already covered by the
// dedicated callbacks.
func WithEventCallback(callback func(event events.Event)) OrchestrateOption {
	return func(o *OrchestrateOptions) {
		o.onEvent = callback
	}
}

type MessageOptions struct {
	// BackendPrompt is prepended to the model prompt without appearing in
	// the transcript.
	BackendPrompt string
	// Image is an attachment forwarded to the model with the message.
	Image *llms.Image
}

type MessageOption func(*MessageOptions)

func WithBackendPrompt(prompt string) MessageOption {
	return func(o *MessageOptions) {
		o.BackendPrompt = prompt
	}
}

func WithMessageImage(image *llms.Image) MessageOption {
	return func(o *MessageOptions) {
		o.Image = image
	}
}
