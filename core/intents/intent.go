// Package intents recognizes structured device commands in model output and
// executes them against the host.
package intents

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

const ActionDeviceControl = "device_control"

const (
	CommandOpenURL             = "open_url"
	CommandSearch              = "search"
	CommandNavigate            = "navigate"
	CommandPlayMusic           = "play_music"
	CommandSetReminder         = "set_reminder"
	CommandSetAlarm            = "set_alarm"
	CommandUnsupported         = "unsupported"
	CommandInternalFulfillment = "internal_fulfillment"
)

// Intent is a structured device command extracted from a model response.
// App rides at the top level of the payload, next to the command, not
// inside the params object.
type Intent struct {
	Action         string `json:"action"`
	Command        string `json:"command"`
	App            string `json:"app"`
	Params         Params `json:"params"`
	SpokenResponse string `json:"spoken_response"`
}

type Params struct {
	URL     string `json:"url"`
	Query   string `json:"query"`
	Content string `json:"content"`
	Time    string `json:"time"`
}

var knownCommands = map[string]struct{}{
	CommandOpenURL:             {},
	CommandSearch:              {},
	CommandNavigate:            {},
	CommandPlayMusic:           {},
	CommandSetReminder:         {},
	CommandSetAlarm:            {},
	CommandUnsupported:         {},
	CommandInternalFulfillment: {},
}

// Parse decides whether a complete model response is a device command. Prose
// responses return ok=false; only payloads that are JSON objects carrying the
// device control action and a known command are treated as intents.
func Parse(payload string) (*Intent, bool) {
	trimmed := strings.TrimSpace(payload)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var intent Intent
	if err := json.Unmarshal([]byte(trimmed), &intent); err != nil {
		if _, ok := err.(*json.SyntaxError); !ok {
			return nil, false
		}
		repaired, repairErr := jsonrepair.JSONRepair(trimmed)
		if repairErr != nil {
			return nil, false
		}
		if err := json.Unmarshal([]byte(repaired), &intent); err != nil {
			return nil, false
		}
	}

	if intent.Action != ActionDeviceControl {
		return nil, false
	}
	if _, ok := knownCommands[intent.Command]; !ok {
		return nil, false
	}

	return &intent, true
}
