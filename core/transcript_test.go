package orchestration

import (
	"testing"

	"github.com/mzorec/vesna-core/core/llms"
	"github.com/mzorec/vesna-core/internal/utils"
)

func TestTranscriptAppendAssignsID(t *testing.T) {
	transcript := newTranscript()

	turn := transcript.Append(llms.Turn{Speaker: llms.SpeakerUser, Text: "hello"})
	if turn.ID == "" {
		t.Fatalf("expected appended turn to get an id")
	}
	if got := transcript.Len(); got != 1 {
		t.Fatalf("expected 1 turn, got %d", got)
	}
}

func TestTranscriptHistoryIsACopy(t *testing.T) {
	transcript := newTranscript()
	transcript.Append(llms.Turn{Speaker: llms.SpeakerUser, Text: "hello"})

	history := transcript.History()
	history[0].Text = "mutated"

	if got := transcript.History()[0].Text; got != "hello" {
		t.Fatalf("expected history mutation to not affect transcript, got %q", got)
	}
}

func TestTranscriptSingleOpenTurn(t *testing.T) {
	transcript := newTranscript()

	if _, err := transcript.OpenAssistantTurn(); err != nil {
		t.Fatalf("unexpected error opening turn: %v", err)
	}
	if _, err := transcript.OpenAssistantTurn(); err == nil {
		t.Fatalf("expected opening a second turn to fail")
	}
}

func TestTranscriptStreamingIntoOpenTurn(t *testing.T) {
	transcript := newTranscript()
	transcript.Append(llms.Turn{Speaker: llms.SpeakerUser, Text: "question"})

	if _, err := transcript.OpenAssistantTurn(); err != nil {
		t.Fatalf("unexpected error opening turn: %v", err)
	}

	transcript.AppendToOpenTurn("first ")
	turn, ok := transcript.AppendToOpenTurn("second")
	if !ok {
		t.Fatalf("expected open turn to accept deltas")
	}
	if turn.Text != "first second" {
		t.Fatalf("expected accumulated text, got %q", turn.Text)
	}

	closed, ok := transcript.CloseOpenTurn()
	if !ok {
		t.Fatalf("expected close to succeed")
	}
	if closed.Text != "first second" {
		t.Fatalf("expected closed turn to keep text, got %q", closed.Text)
	}

	if _, ok := transcript.AppendToOpenTurn("more"); ok {
		t.Fatalf("expected closed turn to reject deltas")
	}
}

func TestTranscriptSetOpenTurnReplacesText(t *testing.T) {
	transcript := newTranscript()
	if _, err := transcript.OpenAssistantTurn(); err != nil {
		t.Fatalf("unexpected error opening turn: %v", err)
	}
	transcript.AppendToOpenTurn(`{"action":"device_control"}`)

	citations := []llms.Citation{{URI: "https://example.com", Title: "Example"}}
	turn, ok := transcript.SetOpenTurn(utils.Ptr("Opening that for you."), citations)
	if !ok {
		t.Fatalf("expected replacement to succeed")
	}
	if turn.Text != "Opening that for you." {
		t.Fatalf("expected replaced text, got %q", turn.Text)
	}
	if len(turn.Citations) != 1 {
		t.Fatalf("expected citations to be attached")
	}

	turn, _ = transcript.SetOpenTurn(nil, nil)
	if turn.Text != "Opening that for you." {
		t.Fatalf("expected nil text to leave content untouched, got %q", turn.Text)
	}
}

func TestTranscriptRemoveLastTurns(t *testing.T) {
	transcript := newTranscript()
	transcript.Append(llms.Turn{Speaker: llms.SpeakerAssistant, Text: "greeting"})
	transcript.Append(llms.Turn{Speaker: llms.SpeakerUser, Text: "question"})
	if _, err := transcript.OpenAssistantTurn(); err != nil {
		t.Fatalf("unexpected error opening turn: %v", err)
	}

	removed := transcript.RemoveLastTurns(2)
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed turns, got %d", len(removed))
	}
	if got := transcript.Len(); got != 1 {
		t.Fatalf("expected only the greeting to remain, got %d turns", got)
	}
	if _, ok := transcript.AppendToOpenTurn("delta"); ok {
		t.Fatalf("expected removal to clear the open turn")
	}
}

func TestTranscriptRemovePastStartIsNotAnError(t *testing.T) {
	transcript := newTranscript()
	transcript.Append(llms.Turn{Speaker: llms.SpeakerUser, Text: "only"})

	removed := transcript.RemoveLastTurns(5)
	if len(removed) != 1 {
		t.Fatalf("expected 1 removed turn, got %d", len(removed))
	}
	if got := transcript.Len(); got != 0 {
		t.Fatalf("expected empty transcript, got %d turns", got)
	}

	if removed := transcript.RemoveLastTurns(1); len(removed) != 0 {
		t.Fatalf("expected removal on empty transcript to be a no-op")
	}
}
