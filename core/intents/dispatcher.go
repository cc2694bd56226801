package intents

import (
	"fmt"
	"net/url"
	"strings"
)

// Opener opens a URL on the host, typically in the default browser.
type Opener interface {
	Open(url string) error
}

// Dispatcher executes recognized device commands. Commands that cannot be
// fulfilled on the host produce a note instead of failing.
type Dispatcher struct {
	opener Opener
}

func NewDispatcher(opener Opener) *Dispatcher {
	return &Dispatcher{opener: opener}
}

// Dispatch executes the command and returns a note describing any part of it
// that was acknowledged rather than performed. Commands with missing
// parameters are dropped without error.
func (d *Dispatcher) Dispatch(intent Intent) (string, error) {
	switch intent.Command {
	case CommandOpenURL:
		if intent.Params.URL == "" {
			return "", nil
		}
		return "", d.open(intent.Params.URL)

	case CommandSearch:
		if intent.Params.Query == "" {
			return "", nil
		}
		if strings.Contains(strings.ToLower(intent.App), "youtube") {
			return "", d.open("https://www.youtube.com/results?search_query=" + url.QueryEscape(intent.Params.Query))
		}
		return "", d.open("https://www.google.com/search?q=" + url.QueryEscape(intent.Params.Query))

	case CommandNavigate:
		if intent.Params.Query == "" {
			return "", nil
		}
		return "", d.open("https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(intent.Params.Query))

	case CommandPlayMusic:
		if intent.Params.Query == "" {
			return "", nil
		}
		note := fmt.Sprintf("Playing %q through YouTube Music.", intent.Params.Query)
		return note, d.open("https://music.youtube.com/search?q=" + url.QueryEscape(intent.Params.Query))

	case CommandSetReminder:
		if intent.Params.Content == "" || intent.Params.Time == "" {
			return "", nil
		}
		return fmt.Sprintf("Reminder noted: %s at %s. No system reminder was scheduled.",
			intent.Params.Content, intent.Params.Time), nil

	case CommandSetAlarm:
		if intent.Params.Time == "" {
			return "", nil
		}
		if intent.Params.Content != "" {
			return fmt.Sprintf("Alarm noted: %s for %s. No system alarm was scheduled.",
				intent.Params.Content, intent.Params.Time), nil
		}
		return fmt.Sprintf("Alarm noted for %s. No system alarm was scheduled.", intent.Params.Time), nil

	case CommandUnsupported, CommandInternalFulfillment:
		return "", nil
	}

	return "", nil
}

func (d *Dispatcher) open(target string) error {
	if d.opener == nil {
		return nil
	}
	if err := d.opener.Open(target); err != nil {
		return fmt.Errorf("failed to open %s: %w", target, err)
	}
	return nil
}
