package deepgram

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mzorec/vesna-core/core/speechtotext"
)

const (
	defaultModel    = "nova-3"
	defaultLanguage = "en-US"
)

// TranscriptionClient opens live transcription sessions against Deepgram's
// streaming API.
type TranscriptionClient struct {
	model    string
	language string
}

type TranscriptionClientOption func(*TranscriptionClient)

func WithModel(model string) TranscriptionClientOption {
	return func(c *TranscriptionClient) {
		c.model = model
	}
}

func WithLanguage(language string) TranscriptionClientOption {
	return func(c *TranscriptionClient) {
		c.language = language
	}
}

func NewTranscriptionClient(opts ...TranscriptionClientOption) *TranscriptionClient {
	client := &TranscriptionClient{
		model:    defaultModel,
		language: defaultLanguage,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type session struct {
	conn   *websocket.Conn
	connMu sync.Mutex

	options speechtotext.SessionOptions

	lastMsgTs time.Time

	finalSegments  []string
	unendedSegment bool

	closed atomic.Bool
	ended  sync.Once
}
