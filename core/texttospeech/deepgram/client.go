package deepgram

import (
	"fmt"
	"slices"
)

type deepgramVoice string

const (
	VoiceAsteria deepgramVoice = "aura-2-asteria-en"
	VoiceThalia  deepgramVoice = "aura-2-thalia-en"
	VoiceAthena  deepgramVoice = "aura-2-athena-en"
	VoiceHelena  deepgramVoice = "aura-2-helena-en"
	VoiceOrion   deepgramVoice = "aura-2-orion-en"
	VoiceArcas   deepgramVoice = "aura-2-arcas-en"

	defaultVoice = VoiceAsteria
)

func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{
		VoiceAsteria,
		VoiceThalia,
		VoiceAthena,
		VoiceHelena,
		VoiceOrion,
		VoiceArcas,
	}
}

// SpeechClient synthesizes utterances through Deepgram's streaming speech
// API. Each Speak call opens its own websocket, so utterances are
// independent and can be stopped individually.
type SpeechClient struct {
	voice deepgramVoice
}

type SpeechClientOption func(*SpeechClient) error

func WithVoice(voice deepgramVoice) SpeechClientOption {
	return func(c *SpeechClient) error {
		if !slices.Contains(GetAvailableVoices(), voice) {
			return fmt.Errorf("invalid voice: %s", voice)
		}
		c.voice = voice
		return nil
	}
}

func NewSpeechClient(opts ...SpeechClientOption) (*SpeechClient, error) {
	client := &SpeechClient{voice: defaultVoice}
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func (c *SpeechClient) SetVoice(voice deepgramVoice) error {
	if !slices.Contains(GetAvailableVoices(), voice) {
		return fmt.Errorf("invalid voice: %s", voice)
	}
	c.voice = voice
	return nil
}
