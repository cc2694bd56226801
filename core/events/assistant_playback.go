package events

const (
	// KindAssistantPlaybackStarted identifies the start of spoken playback.
	KindAssistantPlaybackStarted Kind = "assistant_playback.started"
	// KindAssistantPlaybackEnded identifies the end of spoken playback.
	KindAssistantPlaybackEnded Kind = "assistant_playback.ended"
)

// AssistantPlaybackStarted marks the start of spoken playback of a response.
type AssistantPlaybackStarted struct {
	Base
	Text string
}

// NewAssistantPlaybackStarted creates a playback started event.
func NewAssistantPlaybackStarted(text string) AssistantPlaybackStarted {
	return AssistantPlaybackStarted{Base: NewBase(KindAssistantPlaybackStarted), Text: text}
}

// AssistantPlaybackEnded marks the end of spoken playback. Interrupted is
// true when playback was cut off instead of running to completion.
type AssistantPlaybackEnded struct {
	Base
	Interrupted bool
}

// NewAssistantPlaybackEnded creates a playback ended event.
func NewAssistantPlaybackEnded(interrupted bool) AssistantPlaybackEnded {
	return AssistantPlaybackEnded{Base: NewBase(KindAssistantPlaybackEnded), Interrupted: interrupted}
}
