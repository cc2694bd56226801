package events

const (
	// KindIntentDispatched identifies structured commands handed to the dispatcher.
	KindIntentDispatched Kind = "intent.dispatched"
)

// IntentDispatched carries a recognized device command after dispatch.
type IntentDispatched struct {
	Base
	Command string
	Note    string
}

// NewIntentDispatched creates an intent dispatched event.
func NewIntentDispatched(command, note string) IntentDispatched {
	return IntentDispatched{Base: NewBase(KindIntentDispatched), Command: command, Note: note}
}
