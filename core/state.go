package orchestration

// SessionState is the coarse state of the conversational session. State
// transitions are emitted through [events.SessionStateChanged] and the
// state-changed callback.
type SessionState string

const (
	// StateIdle means the session is waiting for input.
	StateIdle SessionState = "idle"
	// StateListening means the microphone session is open and no exchange is
	// in flight.
	StateListening SessionState = "listening"
	// StateThinking means a model response is being streamed.
	StateThinking SessionState = "thinking"
	// StateSpeaking means a finished response is being spoken aloud.
	StateSpeaking SessionState = "speaking"
	// StateError means the last exchange failed. The session recovers on the
	// next input.
	StateError SessionState = "error"
)
