package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/mzorec/vesna-core/core/audio"
	"github.com/mzorec/vesna-core/core/texttospeech"
)

// Speak synthesizes a single utterance. The full text is sent up front and
// audio is delivered through the AudioCallback as it is generated.
func (c *SpeechClient) Speak(ctx context.Context, text string, opts ...texttospeech.SpeakOption) (texttospeech.Utterance, error) {
	options := &texttospeech.SpeakOptions{EncodingInfo: audio.GetDefaultEncodingInfo()}
	for _, opt := range opts {
		opt(options)
	}

	conn, err := connectWebsocket(c.voice, options.EncodingInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}

	utt := &utterance{ws: conn, options: *options}

	if err := utt.sendWebsocketMessage(speakMsg(text)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to send text to deepgram through websocket: %w", err)
	}
	if err := utt.sendWebsocketMessage(flushMsg); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to flush deepgram buffer through websocket: %w", err)
	}

	go utt.processIncomingMessages(ctx)

	return utt, nil
}

func connectWebsocket(voice deepgramVoice, encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	urlValues := url.Values{}
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", string(voice))
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}

type utterance struct {
	ws *websocket.Conn
	mu sync.Mutex

	options texttospeech.SpeakOptions

	stopped atomic.Bool
	closed  bool
}

// Stop abandons the utterance. It is safe to call more than once and after
// the utterance has already finished.
func (u *utterance) Stop() {
	if !u.stopped.CompareAndSwap(false, true) {
		return
	}

	_ = u.sendWebsocketMessage(clearMsg)
	_ = u.close()
}

func (u *utterance) close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return nil
	}
	u.closed = true

	if err := u.ws.WriteJSON(closeMsg); err != nil {
		if aggressiveCloseErr := u.ws.Close(); aggressiveCloseErr != nil {
			return fmt.Errorf("failed to close websocket: %w", aggressiveCloseErr)
		}
	}
	return nil
}

func (u *utterance) processIncomingMessages(_ context.Context) {
	for {
		msgType, msg, err := u.ws.ReadMessage()
		if err != nil {
			if err.Error() != "websocket: close 1000 (normal)" && !u.stopped.Load() {
				log.Printf("Websocket read error: %v", err)
				if u.options.ErrorCallback != nil {
					u.options.ErrorCallback(fmt.Errorf("speech synthesis failed: %w", err))
				}
			}
			_ = u.ws.Close()
			return
		}

		if u.stopped.Load() {
			continue
		}

		switch msgType {
		case websocket.BinaryMessage:
			if u.options.AudioCallback != nil && len(msg) > 0 {
				u.options.AudioCallback(msg)
			}
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				log.Printf("Failed to unmarshal deepgram message: %v", err)
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				if u.options.DoneCallback != nil {
					u.options.DoneCallback()
				}
				_ = u.close()
				return
			}
		}
	}
}

type websocketMessage struct {
	Type string `json:"type"`
}

var (
	speakMsg = func(text string) struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} {
		return struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: "Speak", Text: text}
	}
	flushMsg = websocketMessage{Type: "Flush"}
	clearMsg = websocketMessage{Type: "Clear"}
	closeMsg = websocketMessage{Type: "Close"}
)

func (u *utterance) sendWebsocketMessage(msg any) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return fmt.Errorf("websocket connection closed")
	}

	if err := u.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write to websocket: %w", err)
	}
	return nil
}
