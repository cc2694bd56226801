package orchestration

import (
	"github.com/mzorec/vesna-core/core/events"
	"github.com/mzorec/vesna-core/core/llms"
)

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts OrchestrateOptions, history func() []llms.Turn) eventEmitter {
	return func(event events.Event) {
		if opts.onEvent != nil {
			opts.onEvent(event)
		}

		switch typedEvent := event.(type) {
		case events.SessionStateChanged:
			if opts.onStateChanged != nil {
				opts.onStateChanged(SessionState(typedEvent.State))
			}
		case events.SessionError:
			if opts.onError != nil {
				opts.onError(typedEvent.Err, typedEvent.Terminal)
			}
		case events.UserPartialTranscript:
			if opts.onPartialTranscript != nil {
				opts.onPartialTranscript(typedEvent.Transcript)
			}
		case events.TranscriptTurnAppended:
			if opts.onTranscriptUpdated != nil {
				opts.onTranscriptUpdated(history())
			}
		case events.TranscriptOpenTurnUpdated:
			if opts.onTranscriptUpdated != nil {
				opts.onTranscriptUpdated(history())
			}
			if opts.onResponse != nil {
				opts.onResponse(typedEvent.Turn.Text)
			}
		case events.TranscriptTurnsRemoved:
			if opts.onTranscriptUpdated != nil {
				opts.onTranscriptUpdated(history())
			}
		case events.IntentDispatched:
			if opts.onIntentDispatched != nil {
				opts.onIntentDispatched(typedEvent.Command, typedEvent.Note)
			}
		}
	}
}
