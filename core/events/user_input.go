package events

const (
	// KindUserPartialTranscript identifies mutable in-progress transcript snapshots.
	KindUserPartialTranscript Kind = "user_input.partial_transcript"
)

// UserPartialTranscript carries the utterance recognized so far. Each
// snapshot replaces the previous one rather than extending it.
type UserPartialTranscript struct {
	Base
	Transcript string
}

// NewUserPartialTranscript creates a partial transcript snapshot event.
func NewUserPartialTranscript(transcript string) UserPartialTranscript {
	return UserPartialTranscript{Base: NewBase(KindUserPartialTranscript), Transcript: transcript}
}
