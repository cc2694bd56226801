package orchestration

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/mzorec/vesna-core/core/llms"
)

var errOpenTurnExists = errors.New("transcript already has an open assistant turn")

// transcript is the append-only conversation record. At most one turn, the
// most recent assistant turn, may be open for streaming mutation; everything
// before it is immutable.
type transcript struct {
	mu    sync.RWMutex
	turns []llms.Turn
	open  bool
}

func newTranscript() *transcript {
	return &transcript{}
}

// History returns a point-in-time copy of all turns.
func (t *transcript) History() []llms.Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	turns := make([]llms.Turn, len(t.turns))
	copy(turns, t.turns)
	return turns
}

func (t *transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Append adds a completed turn. An id is assigned if the turn does not carry
// one. Appending closes any open turn.
func (t *transcript) Append(turn llms.Turn) llms.Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	t.open = false
	t.turns = append(t.turns, turn)
	return turn
}

// OpenAssistantTurn appends an empty assistant turn and marks it open for
// streaming. Only one turn can be open at a time.
func (t *transcript) OpenAssistantTurn() (llms.Turn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open {
		return llms.Turn{}, errOpenTurnExists
	}

	turn := llms.Turn{ID: uuid.NewString(), Speaker: llms.SpeakerAssistant}
	t.turns = append(t.turns, turn)
	t.open = true
	return turn, nil
}

// AppendToOpenTurn extends the open assistant turn with a streamed text
// delta. It reports false when no turn is open.
func (t *transcript) AppendToOpenTurn(delta string) (llms.Turn, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open || len(t.turns) == 0 {
		return llms.Turn{}, false
	}

	t.turns[len(t.turns)-1].Text += delta
	return t.turns[len(t.turns)-1], true
}

// SetOpenTurn replaces the open turn's text and/or attaches citations. A nil
// text leaves the streamed text in place.
func (t *transcript) SetOpenTurn(text *string, citations []llms.Citation) (llms.Turn, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open || len(t.turns) == 0 {
		return llms.Turn{}, false
	}

	if text != nil {
		t.turns[len(t.turns)-1].Text = *text
	}
	if citations != nil {
		t.turns[len(t.turns)-1].Citations = citations
	}
	return t.turns[len(t.turns)-1], true
}

// CloseOpenTurn finalizes the open assistant turn, making it immutable.
func (t *transcript) CloseOpenTurn() (llms.Turn, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open || len(t.turns) == 0 {
		return llms.Turn{}, false
	}

	t.open = false
	return t.turns[len(t.turns)-1], true
}

// RemoveLastTurns rolls back up to n trailing turns and returns their ids in
// removal order. Removing past the start of the transcript is not an error.
func (t *transcript) RemoveLastTurns(n int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := []string{}
	for range n {
		if len(t.turns) == 0 {
			break
		}
		removed = append(removed, t.turns[len(t.turns)-1].ID)
		t.turns = t.turns[:len(t.turns)-1]
	}
	t.open = false
	return removed
}
