package llms

import (
	"context"
	"iter"
)

// Stream is a server-streamed model response. Chunks are yielded in arrival
// order and the iterator ends when the stream is exhausted or fails.
type Stream interface {
	Chunks(context.Context) iter.Seq2[StreamChunk, error]
}

type StreamChunk interface {
	FinishReason() *string
}

// StreamContentChunk carries an incremental text delta.
type StreamContentChunk interface {
	StreamChunk
	Content() string
}

// StreamCitationsChunk carries grounding citations reported alongside the
// response generated so far. The same URI may be reported more than once
// across chunks; consumers are expected to de-duplicate.
type StreamCitationsChunk interface {
	StreamChunk
	Citations() []Citation
}
