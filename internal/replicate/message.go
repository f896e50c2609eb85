package replicate

import (
	"errors"
	"time"

	"focusband/companion/internal/clockref"
)

// MessageType is the discriminator for daily-summary messages. Anything
// else on the channel is dropped whole.
const MessageType = "dailySummary"

// MessageVersion identifies the current wire layout.
const MessageVersion = 1

// ErrWrongType marks a message whose discriminator does not match; it is
// the only condition that rejects an inbound message entirely.
var ErrWrongType = errors.New("replicate: unexpected message type")

// Snapshot is a point-in-time copy of one day's totals, ready to send.
type Snapshot struct {
	DayKey       string
	FocusSeconds int
	BreakSeconds int
	Sessions     int
	SentAt       time.Time
}

// Message is the wire form of a Snapshot. Every field besides Type is
// optional on receive: missing counters default to zero, a missing ymd to
// the receiver's current day, a missing updatedAt to the receive instant.
type Message struct {
	Type         string  `json:"type"`
	Version      int     `json:"v"`
	YMD          string  `json:"ymd"`
	FocusSeconds int     `json:"focusSeconds"`
	BreakSeconds int     `json:"breakSeconds"`
	Sessions     int     `json:"sessions"`
	UpdatedAt    float64 `json:"updatedAt"`
}

// NewMessage wraps a snapshot for transmission.
func NewMessage(s Snapshot) Message {
	return Message{
		Type:         MessageType,
		Version:      MessageVersion,
		YMD:          s.DayKey,
		FocusSeconds: s.FocusSeconds,
		BreakSeconds: s.BreakSeconds,
		Sessions:     s.Sessions,
		UpdatedAt:    float64(s.SentAt.Unix()) + float64(s.SentAt.Nanosecond())/float64(time.Second),
	}
}

// Normalize validates the discriminator and applies the defaulting rules,
// producing a snapshot safe to hand to the merge.
func (m Message) Normalize(now time.Time) (Snapshot, error) {
	if m.Type != MessageType {
		return Snapshot{}, ErrWrongType
	}

	s := Snapshot{
		DayKey:       m.YMD,
		FocusSeconds: clampNonNegative(m.FocusSeconds),
		BreakSeconds: clampNonNegative(m.BreakSeconds),
		Sessions:     clampNonNegative(m.Sessions),
	}
	if s.DayKey == "" {
		s.DayKey = clockref.DayKey(now)
	}
	if m.UpdatedAt > 0 {
		sec := int64(m.UpdatedAt)
		nsec := int64((m.UpdatedAt - float64(sec)) * float64(time.Second))
		s.SentAt = time.Unix(sec, nsec).UTC()
	} else {
		s.SentAt = now.UTC()
	}
	return s, nil
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
