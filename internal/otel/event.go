// Package otel records structured events for MovieHub.
//
// Events are typed structs written as JSONL lines by an async Logger. An
// optional RingBuffer keeps the most recent events in memory for the debug
// overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level is event severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind names an event as "<subsystem>.<action>".
type EventKind string

const (
	// Result list fetches
	KindFetchStart    EventKind = "fetch.start"
	KindFetchComplete EventKind = "fetch.complete"
	KindFetchError    EventKind = "fetch.error"
	KindFetchStale    EventKind = "fetch.stale"

	// Search input
	KindSearchDebounce   EventKind = "search.debounce"
	KindSearchSuperseded EventKind = "search.superseded"

	// Details overlay
	KindDetailsStart    EventKind = "details.start"
	KindDetailsComplete EventKind = "details.complete"
	KindDetailsError    EventKind = "details.error"

	// Genre catalog
	KindGenresComplete EventKind = "genres.complete"
	KindGenresError    EventKind = "genres.error"

	// Favorites
	KindFavoriteToggle EventKind = "favorites.toggle"
	KindStoreError     EventKind = "store.error"

	// System
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"

	// Message tracing, only emitted when MOVIEHUB_TRACE is set
	KindMsgReceived EventKind = "trace.msg_received"
	KindMsgHandled  EventKind = "trace.msg_handled"
)

// Event is a single observability record. Only Kind is required.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"` // "coord", "tmdb", "ui", "main"
	SessionID string         `json:"session_id,omitempty"`
	FetchID   string         `json:"fetch_id,omitempty"` // correlates start/complete of one fetch
	Seq       uint64         `json:"seq,omitempty"`
	Section   string         `json:"section,omitempty"`
	Query     string         `json:"query,omitempty"`
	GenreID   int            `json:"genre_id,omitempty"`
	MovieID   int            `json:"movie_id,omitempty"`
	Count     int            `json:"count,omitempty"`
	Dur       time.Duration  `json:"-"`
	DurMs     float64        `json:"dur_ms,omitempty"` // filled from Dur when marshaled
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// MarshalJSON converts Dur into DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	p := plain(e)
	if e.Dur > 0 {
		p.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(p)
}
