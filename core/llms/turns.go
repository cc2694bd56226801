package llms

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Citation is a grounding source reference reported by the model alongside
// generated text.
type Citation struct {
	URI   string
	Title string
}

// Image is an inline image payload attached to a user turn and forwarded to
// the model as-is.
type Image struct {
	MIMEType string
	Data     []byte
}

// Turn is a single message in the conversation transcript.
//
// Turns are immutable once a newer turn exists; only the most recent
// assistant turn may still be mutated while a response is streaming into it
// (see the transcript store in the orchestration package).
type Turn struct {
	ID      string
	Speaker Speaker

	// Text is the turn content. For the user it is the prompt, for the
	// assistant it is the (possibly still streaming) response.
	Text string

	// Image is an optional attachment carried by user turns.
	Image *Image

	// Citations are the grounding sources attached to a finalised assistant
	// turn, de-duplicated by URI.
	Citations []Citation
}
