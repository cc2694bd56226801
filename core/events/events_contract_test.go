package events

import (
	"errors"
	"testing"

	"github.com/mzorec/vesna-core/core/llms"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "session state changed", event: NewSessionStateChanged("idle"), expected: KindSessionStateChanged},
		{name: "session error", event: NewSessionError(errors.New("boom"), false), expected: KindSessionError},
		{name: "user partial transcript", event: NewUserPartialTranscript("hel"), expected: KindUserPartialTranscript},
		{name: "transcript turn appended", event: NewTranscriptTurnAppended(llms.Turn{}), expected: KindTranscriptTurnAppended},
		{name: "transcript open turn updated", event: NewTranscriptOpenTurnUpdated(llms.Turn{}), expected: KindTranscriptOpenTurnUpdated},
		{name: "transcript turns removed", event: NewTranscriptTurnsRemoved([]string{"id"}), expected: KindTranscriptTurnsRemoved},
		{name: "intent dispatched", event: NewIntentDispatched("open_url", ""), expected: KindIntentDispatched},
		{name: "assistant playback started", event: NewAssistantPlaybackStarted("text"), expected: KindAssistantPlaybackStarted},
		{name: "assistant playback ended", event: NewAssistantPlaybackEnded(true), expected: KindAssistantPlaybackEnded},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestBaseAssignsTimestamp(t *testing.T) {
	event := NewSessionStateChanged("listening")

	if event.Timestamp().IsZero() {
		t.Fatalf("expected a non-zero timestamp")
	}
}
