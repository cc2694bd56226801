package orchestration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mzorec/vesna-core/core/events"
	"github.com/mzorec/vesna-core/core/intents"
	"github.com/mzorec/vesna-core/core/llms"
	"github.com/mzorec/vesna-core/internal/utils"
	"go.opentelemetry.io/otel/codes"
)

// ErrNoLanguageModel means the orchestrator has no streaming model
// configured and cannot process messages.
var ErrNoLanguageModel = errors.New("no language model configured")

// ProcessUserMessage runs one full exchange: the message is appended to the
// transcript, streamed through the model into an open assistant turn, and
// the finished response is either dispatched as a device command or spoken
// as-is. The call is synchronous up to the point playback starts.
//
// A message arriving while another exchange is in flight is dropped
// silently; interrupting first is the caller's choice, not an implicit side
// effect.
func (o *Orchestrator) ProcessUserMessage(ctx context.Context, text string, opts ...MessageOption) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if o.llm == nil {
		return ErrNoLanguageModel
	}
	if !o.processing.CompareAndSwap(false, true) {
		return nil
	}
	o.clearLastError()

	ctx, span := tracer.Start(ctx, "process user message")
	defer span.End()

	options := MessageOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	// The prompt history must not include the turns of this exchange.
	history := o.transcript.History()

	userTurn := o.transcript.Append(llms.Turn{
		Speaker: llms.SpeakerUser,
		Text:    text,
		Image:   options.Image,
	})
	o.emitEvent(events.NewTranscriptTurnAppended(userTurn))

	assistantTurn, err := o.transcript.OpenAssistantTurn()
	if err != nil {
		o.transcript.RemoveLastTurns(1)
		o.processing.Store(false)
		return fmt.Errorf("failed to open assistant turn: %w", err)
	}
	o.emitEvent(events.NewTranscriptOpenTurnUpdated(assistantTurn))

	ex := o.beginExchange(ctx)
	o.setState(StateThinking)

	prompt := text
	if options.BackendPrompt != "" {
		prompt = options.BackendPrompt + "\n\n" + text
	}

	promptOpts := []llms.PromptOption{llms.WithTurns(history...)}
	if options.Image != nil {
		promptOpts = append(promptOpts, llms.WithImage(options.Image))
	}

	stream := o.llm.PromptWithStream(ex.ctx, prompt, promptOpts...)

	response := strings.Builder{}
	var streamErr error
	for chunk, err := range stream.Chunks(ex.ctx) {
		if err != nil {
			streamErr = err
			break
		}
		if ex.isCancelled() {
			break
		}

		switch chunk := chunk.(type) {
		case llms.StreamContentChunk:
			response.WriteString(chunk.Content())
			if turn, ok := o.transcript.AppendToOpenTurn(chunk.Content()); ok {
				o.emitEvent(events.NewTranscriptOpenTurnUpdated(turn))
			}
		case llms.StreamCitationsChunk:
			ex.mergeCitations(chunk.Citations())
		}
	}

	if ex.isCancelled() {
		o.rollback(ex, 2)
		o.settleRestState(ex)
		return nil
	}

	if streamErr != nil {
		recordedErr := fmt.Errorf("response stream failed: %w", streamErr)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())

		o.rollback(ex, 1)
		o.setState(StateError)
		o.emitEvent(events.NewSessionError(recordedErr, false))
		return recordedErr
	}

	if intent, ok := intents.Parse(response.String()); ok {
		o.fulfillIntent(ex, *intent)
		return nil
	}

	o.transcript.SetOpenTurn(nil, ex.citationSnapshot())
	if turn, ok := o.transcript.CloseOpenTurn(); ok {
		o.emitEvent(events.NewTranscriptTurnAppended(turn))
	}
	o.speak(ex, response.String())
	return nil
}

// fulfillIntent replaces the streamed JSON payload with the command's
// spoken response, executes the command, and speaks the result.
func (o *Orchestrator) fulfillIntent(ex *exchange, intent intents.Intent) {
	o.transcript.SetOpenTurn(utils.Ptr(intent.SpokenResponse), nil)
	if turn, ok := o.transcript.CloseOpenTurn(); ok {
		o.emitEvent(events.NewTranscriptTurnAppended(turn))
	}

	note, err := o.dispatcher.Dispatch(intent)
	if err != nil {
		o.emitEvent(events.NewSessionError(err, false))
	}
	if note != "" {
		noteTurn := o.transcript.Append(llms.Turn{Speaker: llms.SpeakerAssistant, Text: note})
		o.emitEvent(events.NewTranscriptTurnAppended(noteTurn))
	}
	o.emitEvent(events.NewIntentDispatched(intent.Command, note))

	o.speak(ex, intent.SpokenResponse)
}

// rollback removes the trailing turns of a cancelled or failed exchange and
// settles it.
func (o *Orchestrator) rollback(ex *exchange, turns int) {
	removed := o.transcript.RemoveLastTurns(turns)
	if len(removed) > 0 {
		o.emitEvent(events.NewTranscriptTurnsRemoved(removed))
	}
	o.finishExchange(ex)
}

// speak voices the finished response. An empty response skips straight back
// to the resting state.
func (o *Orchestrator) speak(ex *exchange, text string) {
	if ex.isCancelled() || strings.TrimSpace(text) == "" {
		o.finishExchange(ex)
		o.settleRestState(ex)
		return
	}

	o.setState(StateSpeaking)
	o.emitEvent(events.NewAssistantPlaybackStarted(text))

	o.speechOutput.Speak(ex.ctx, text,
		func() {
			o.emitEvent(events.NewAssistantPlaybackEnded(false))
			o.finishExchange(ex)
			o.settleRestState(ex)
		},
		func(err error) {
			recordedErr := fmt.Errorf("speech synthesis failed: %w", err)
			o.emitEvent(events.NewSessionError(recordedErr, false))
			o.emitEvent(events.NewAssistantPlaybackEnded(true))
			o.finishExchange(ex)
			o.settleRestState(ex)
		},
	)
}
