package intents

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type openerStub struct {
	err error

	mu   sync.Mutex
	urls []string
}

func (o *openerStub) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return o.err
}

func (o *openerStub) opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	urls := make([]string, len(o.urls))
	copy(urls, o.urls)
	return urls
}

func TestDispatchOpensURLs(t *testing.T) {
	for _, tc := range []struct {
		name   string
		intent Intent
		url    string
	}{
		{
			name:   "open url",
			intent: Intent{Command: CommandOpenURL, Params: Params{URL: "https://example.com"}},
			url:    "https://example.com",
		},
		{
			name:   "web search",
			intent: Intent{Command: CommandSearch, Params: Params{Query: "go generics"}},
			url:    "https://www.google.com/search?q=go+generics",
		},
		{
			name:   "youtube search",
			intent: Intent{Command: CommandSearch, App: "YouTube", Params: Params{Query: "lo-fi"}},
			url:    "https://www.youtube.com/results?search_query=lo-fi",
		},
		{
			name:   "navigation",
			intent: Intent{Command: CommandNavigate, Params: Params{Query: "central station"}},
			url:    "https://www.google.com/maps/search/?api=1&query=central+station",
		},
		{
			name:   "music",
			intent: Intent{Command: CommandPlayMusic, Params: Params{Query: "jazz"}},
			url:    "https://music.youtube.com/search?q=jazz",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opener := &openerStub{}
			dispatcher := NewDispatcher(opener)

			if _, err := dispatcher.Dispatch(tc.intent); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			urls := opener.opened()
			if len(urls) != 1 || urls[0] != tc.url {
				t.Fatalf("expected %q to be opened, got %v", tc.url, urls)
			}
		})
	}
}

func TestDispatchMissingParamsIsANoOp(t *testing.T) {
	opener := &openerStub{}
	dispatcher := NewDispatcher(opener)

	for _, intent := range []Intent{
		{Command: CommandOpenURL},
		{Command: CommandSearch},
		{Command: CommandNavigate},
		{Command: CommandPlayMusic},
		{Command: CommandSetReminder, Params: Params{Content: "call mom"}},
		{Command: CommandSetAlarm},
	} {
		note, err := dispatcher.Dispatch(intent)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", intent.Command, err)
		}
		if note != "" {
			t.Errorf("expected no note for %q, got %q", intent.Command, note)
		}
	}
	if urls := opener.opened(); len(urls) != 0 {
		t.Fatalf("expected nothing to be opened, got %v", urls)
	}
}

func TestDispatchAcknowledgesReminders(t *testing.T) {
	dispatcher := NewDispatcher(&openerStub{})

	note, err := dispatcher.Dispatch(Intent{
		Command: CommandSetReminder,
		Params:  Params{Content: "water the plants", Time: "6pm"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(note, "water the plants") || !strings.Contains(note, "6pm") {
		t.Errorf("expected the note to restate the reminder, got %q", note)
	}
	if !strings.Contains(note, "No system reminder was scheduled") {
		t.Errorf("expected the note to flag the unscheduled reminder, got %q", note)
	}
}

func TestDispatchAcknowledgesAlarms(t *testing.T) {
	dispatcher := NewDispatcher(&openerStub{})

	note, err := dispatcher.Dispatch(Intent{
		Command: CommandSetAlarm,
		Params:  Params{Time: "7am"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(note, "7am") || !strings.Contains(note, "No system alarm was scheduled") {
		t.Errorf("unexpected alarm note: %q", note)
	}
}

func TestDispatchAlarmNoteCarriesContent(t *testing.T) {
	dispatcher := NewDispatcher(&openerStub{})

	note, err := dispatcher.Dispatch(Intent{
		Command: CommandSetAlarm,
		Params:  Params{Content: "morning run", Time: "6am"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(note, "morning run") || !strings.Contains(note, "6am") {
		t.Errorf("expected the note to restate the alarm, got %q", note)
	}
}

func TestDispatchWithoutOpener(t *testing.T) {
	dispatcher := NewDispatcher(nil)

	if _, err := dispatcher.Dispatch(Intent{
		Command: CommandOpenURL,
		Params:  Params{URL: "https://example.com"},
	}); err != nil {
		t.Fatalf("expected a nil opener to be acknowledged silently, got %v", err)
	}
}

func TestDispatchWrapsOpenerFailure(t *testing.T) {
	openerErr := errors.New("no browser available")
	dispatcher := NewDispatcher(&openerStub{err: openerErr})

	_, err := dispatcher.Dispatch(Intent{
		Command: CommandOpenURL,
		Params:  Params{URL: "https://example.com"},
	})
	if !errors.Is(err, openerErr) {
		t.Fatalf("expected the opener error to be wrapped, got %v", err)
	}
}
