package events

const (
	// KindSessionStateChanged identifies session state transitions.
	KindSessionStateChanged Kind = "session.state_changed"
	// KindSessionError identifies component failures surfaced to the session.
	KindSessionError Kind = "session.error"
)

// SessionStateChanged marks a transition of the session state machine.
type SessionStateChanged struct {
	Base
	State string
}

// NewSessionStateChanged creates a session state transition event.
func NewSessionStateChanged(state string) SessionStateChanged {
	return SessionStateChanged{Base: NewBase(KindSessionStateChanged), State: state}
}

// SessionError carries a component failure. Recoverable errors leave the
// session usable; terminal ones mean the affected capability is gone for the
// rest of the session.
type SessionError struct {
	Base
	Err      error
	Terminal bool
}

// NewSessionError creates a session error event.
func NewSessionError(err error, terminal bool) SessionError {
	return SessionError{Base: NewBase(KindSessionError), Err: err, Terminal: terminal}
}
