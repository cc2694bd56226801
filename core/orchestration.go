package orchestration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mzorec/vesna-core/core/events"
	"github.com/mzorec/vesna-core/core/intents"
	"github.com/mzorec/vesna-core/core/llms"
)

// Orchestrator coordinates the conversational session: it routes recognized
// speech and typed input into the language model, streams the response into
// the transcript, and speaks the result while staying interruptible at
// every stage.
type Orchestrator struct {
	mu             sync.Mutex
	state          SessionState
	lastError      string
	activeExchange *exchange

	transcript *transcript
	llm        LLMWithStream
	dispatcher *intents.Dispatcher

	speechInput  speechInput
	speechOutput speechOutput

	processing      atomic.Bool
	sttUnsupported  atomic.Bool
	emit            eventEmitter
	orchestrateOpts OrchestrateOptions

	baseContext context.Context
	closeOnce   sync.Once
	now         func() time.Time
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		state:       StateIdle,
		transcript:  newTranscript(),
		dispatcher:  intents.NewDispatcher(nil),
		baseContext: context.Background(),
		emit:        noopEventEmitter,
		now:         time.Now,
	}
	o.speechInput.continuous = true
	o.speechInput.callbacks = speechInputCallbacks{
		onPartialTranscript: func(transcript string) {
			o.emitEvent(events.NewUserPartialTranscript(transcript))
		},
		onUtterance: o.handleUtterance,
		onError: func(err error) {
			o.emitEvent(events.NewSessionError(err, false))
		},
		onStopped: func() {
			o.settleIdle()
		},
	}

	for _, opt := range opts {
		opt(o)
	}

	o.transcript.Append(llms.Turn{
		Speaker: llms.SpeakerAssistant,
		Text:    greetingText(o.now()),
	})

	return o
}

// Orchestrate wires the session callbacks and binds the base context. The
// session ends when ctx is cancelled.
//
// Call Orchestrate at most once per orchestrator instance.
func (o *Orchestrator) Orchestrate(ctx context.Context, opts ...OrchestrateOption) {
	o.orchestrateOpts = OrchestrateOptions{}
	for _, opt := range opts {
		opt(&o.orchestrateOpts)
	}

	o.baseContext = ctx
	o.emit = newCallbackEventEmitter(o.orchestrateOpts, o.Transcript)

	go func() {
		<-ctx.Done()
		o.Close()
	}()

	o.emitEvent(events.NewSessionStateChanged(string(o.State())))
}

func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		if err := o.speechInput.close(); err != nil {
			logger.Warn("Failed to close speech input", "error", err)
		}
		o.Interrupt()
	})
}

// State returns the current session state.
func (o *Orchestrator) State() SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Transcript returns a point-in-time copy of the conversation.
func (o *Orchestrator) Transcript() []llms.Turn {
	return o.transcript.History()
}

// LastError returns the message of the most recent component failure, or an
// empty string. It is cleared when a new exchange starts.
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

func (o *Orchestrator) clearLastError() {
	o.mu.Lock()
	o.lastError = ""
	o.mu.Unlock()
}

// StartListening opens the microphone session. Any in-flight response is
// interrupted first, so speaking over the assistant is a natural way to cut
// it off.
func (o *Orchestrator) StartListening() error {
	o.Interrupt()

	if err := o.speechInput.start(o.baseContext); err != nil {
		terminal := o.speechInput.engine == nil
		if terminal {
			if o.sttUnsupported.CompareAndSwap(false, true) {
				o.emitEvent(events.NewSessionError(ErrSpeechInputUnsupported, true))
			}
		} else {
			o.emitEvent(events.NewSessionError(err, false))
		}
		return err
	}

	if o.State() == StateIdle {
		o.setState(StateListening)
	}
	return nil
}

// StopListening closes the microphone session. A stop requested here always
// wins over an automatic session restart.
func (o *Orchestrator) StopListening() error {
	if err := o.speechInput.stop(); err != nil {
		o.emitEvent(events.NewSessionError(err, false))
		return err
	}
	return nil
}

// IsListening reports whether a microphone session is open.
func (o *Orchestrator) IsListening() bool {
	return o.speechInput.isActive()
}

// Interrupt cancels whatever the assistant is currently doing. A response
// still streaming is rolled back together with the user turn that prompted
// it; a response already being spoken is cut off but stays in the
// transcript.
func (o *Orchestrator) Interrupt() {
	o.mu.Lock()
	ex := o.activeExchange
	o.mu.Unlock()

	if ex != nil {
		ex.Cancel()
	}

	o.speechOutput.CancelAll()

	if o.State() == StateSpeaking {
		o.emitEvent(events.NewAssistantPlaybackEnded(true))
		o.finishExchange(ex)
		o.settleRestState(ex)
	}

	if ex != nil {
		ex.awaitSettled(o.baseContext)
	}
}

func (o *Orchestrator) handleUtterance(transcript string) {
	o.Interrupt()
	go func() {
		if err := o.ProcessUserMessage(o.baseContext, transcript); err != nil {
			logger.Warn("Failed to process utterance", "error", err)
		}
	}()
}

func (o *Orchestrator) emitEvent(event events.Event) {
	if errEvent, ok := event.(events.SessionError); ok && errEvent.Err != nil {
		o.mu.Lock()
		o.lastError = errEvent.Err.Error()
		o.mu.Unlock()
	}
	o.emit(event)
}

func (o *Orchestrator) setState(state SessionState) {
	o.mu.Lock()
	if o.state == state {
		o.mu.Unlock()
		return
	}
	o.state = state
	o.mu.Unlock()

	o.emitEvent(events.NewSessionStateChanged(string(state)))
}

// settleIdle returns the session to its resting state, which is listening
// when the microphone session is still open.
func (o *Orchestrator) settleIdle() {
	if o.speechInput.isActive() {
		o.setState(StateListening)
		return
	}
	o.setState(StateIdle)
}

func (o *Orchestrator) beginExchange(ctx context.Context) *exchange {
	ex := newExchange(ctx)
	o.mu.Lock()
	o.activeExchange = ex
	o.mu.Unlock()
	return ex
}

// finishExchange releases the exchange. The processing slot is freed before
// the exchange settles, so an interrupter unblocked by settle can start its
// own exchange right away.
func (o *Orchestrator) finishExchange(ex *exchange) {
	o.mu.Lock()
	owned := o.activeExchange == ex
	if owned {
		o.activeExchange = nil
	}
	o.mu.Unlock()

	if owned {
		o.processing.Store(false)
	}
	if ex != nil {
		ex.settle()
	}
}

// settleRestState returns the session to rest unless a newer exchange has
// already taken over since ex finished.
func (o *Orchestrator) settleRestState(ex *exchange) {
	o.mu.Lock()
	superseded := o.activeExchange != nil && o.activeExchange != ex
	o.mu.Unlock()

	if superseded {
		return
	}
	o.settleIdle()
}

func greetingText(now time.Time) string {
	greeting := "Good evening."
	switch hour := now.Hour(); {
	case hour < 12:
		greeting = "Good morning."
	case hour < 18:
		greeting = "Good afternoon."
	}
	return fmt.Sprintf("%s I'm VESNA. How can I help you today?", greeting)
}
