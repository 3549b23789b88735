package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

type SourceDoneEvent struct {
	Type       string `json:"type"`
	Source     string `json:"source"`
	Candidates int    `json:"candidates"`
	Error      string `json:"error,omitempty"`
	Timestamp  string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifySourceDone publishes one adapter's completion so connected
// clients can render scrape progress.
func NotifySourceDone(source string, candidates int, err error) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	source = strings.TrimSpace(source)
	if source == "" {
		return
	}

	evt := SourceDoneEvent{
		Type:       "source_done",
		Source:     source,
		Candidates: candidates,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		evt.Error = err.Error()
	}
	b, merr := json.Marshal(evt)
	if merr != nil {
		return
	}

	h.Broadcast(b)
}
