package events

import "github.com/mzorec/vesna-core/core/llms"

const (
	// KindTranscriptTurnAppended identifies completed turns added to the transcript.
	KindTranscriptTurnAppended Kind = "transcript.turn_appended"
	// KindTranscriptOpenTurnUpdated identifies updates to the streaming assistant turn.
	KindTranscriptOpenTurnUpdated Kind = "transcript.open_turn_updated"
	// KindTranscriptTurnsRemoved identifies trailing turns rolled back from the transcript.
	KindTranscriptTurnsRemoved Kind = "transcript.turns_removed"
)

// TranscriptTurnAppended carries a turn added to the conversation transcript.
type TranscriptTurnAppended struct {
	Base
	Turn llms.Turn
}

// NewTranscriptTurnAppended creates a turn appended event.
func NewTranscriptTurnAppended(turn llms.Turn) TranscriptTurnAppended {
	return TranscriptTurnAppended{Base: NewBase(KindTranscriptTurnAppended), Turn: turn}
}

// TranscriptOpenTurnUpdated carries a snapshot of the assistant turn that is
// still being streamed.
type TranscriptOpenTurnUpdated struct {
	Base
	Turn llms.Turn
}

// NewTranscriptOpenTurnUpdated creates an open turn update event.
func NewTranscriptOpenTurnUpdated(turn llms.Turn) TranscriptOpenTurnUpdated {
	return TranscriptOpenTurnUpdated{Base: NewBase(KindTranscriptOpenTurnUpdated), Turn: turn}
}

// TranscriptTurnsRemoved carries the ids of turns rolled back after a
// cancelled or failed exchange.
type TranscriptTurnsRemoved struct {
	Base
	TurnIDs []string
}

// NewTranscriptTurnsRemoved creates a turns removed event.
func NewTranscriptTurnsRemoved(turnIDs []string) TranscriptTurnsRemoved {
	return TranscriptTurnsRemoved{Base: NewBase(KindTranscriptTurnsRemoved), TurnIDs: turnIDs}
}
