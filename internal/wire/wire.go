package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category is the counter bucket an entry is rendered under.
type Category string

const (
	CategoryInfo    Category = "info"
	CategoryWarning Category = "warning"
	CategoryError   Category = "error"
	CategoryDebug   Category = "debug"
	CategoryLog     Category = "log"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryLog, CategoryInfo, CategoryWarning, CategoryError, CategoryDebug}

// CategoryOf maps a wire level onto its counter category. Unknown and empty
// levels fall into CategoryLog.
func CategoryOf(level string) Category {
	switch Category(level) {
	case CategoryInfo, CategoryWarning, CategoryError, CategoryDebug:
		return Category(level)
	default:
		return CategoryLog
	}
}

// Envelope is the frame the server sends for every log line.
type Envelope struct {
	ID   int64           `json:"id"`
	Body json.RawMessage `json:"body"`
}

// LogEvent mirrors a structured log line.
type LogEvent struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Stack     string `json:"stack,omitempty"`
}

var errMissingID = errors.New("envelope has no id")

// Decode parses a text frame into an Envelope. The frame must be a JSON
// object carrying an integer id.
func Decode(raw []byte) (Envelope, error) {
	var probe struct {
		ID   json.RawMessage `json:"id"`
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if len(probe.ID) == 0 || bytes.Equal(probe.ID, []byte("null")) {
		return Envelope{}, errMissingID
	}
	var id int64
	if err := json.Unmarshal(probe.ID, &id); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope id: %w", err)
	}
	return Envelope{ID: id, Body: probe.Body}, nil
}

// BodyKind tags the variant held by a Body.
type BodyKind int

const (
	// BodyOther is any body that is neither a structured event nor a string.
	BodyOther BodyKind = iota
	// BodyEvent is a structured LogEvent.
	BodyEvent
	// BodyText is a plain JSON string.
	BodyText
)

// Body is the classified payload of an envelope.
type Body struct {
	Kind  BodyKind
	Event LogEvent
	Text  string
}

// ParseBody classifies an envelope body. It never fails: shapes that do not
// match a structured event or a string come back as BodyOther.
func ParseBody(body json.RawMessage) Body {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Body{Kind: BodyOther}
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			return Body{Kind: BodyText, Text: text}
		}
	case '{':
		if evt, ok := parseEvent(trimmed); ok {
			return Body{Kind: BodyEvent, Event: evt}
		}
	}
	return Body{Kind: BodyOther}
}

// parseEvent accepts an object only when level, message and timestamp are all
// JSON strings.
func parseEvent(raw []byte) (LogEvent, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return LogEvent{}, false
	}
	var evt LogEvent
	for name, dst := range map[string]*string{
		"level":     &evt.Level,
		"message":   &evt.Message,
		"timestamp": &evt.Timestamp,
	} {
		value := bytes.TrimSpace(fields[name])
		if len(value) == 0 || value[0] != '"' || json.Unmarshal(value, dst) != nil {
			return LogEvent{}, false
		}
	}
	if data, ok := fields["data"]; ok {
		var v any
		if err := json.Unmarshal(data, &v); err == nil {
			evt.Data = v
		}
	}
	if stack, ok := fields["stack"]; ok {
		var s string
		if err := json.Unmarshal(stack, &s); err == nil {
			evt.Stack = s
		} else {
			evt.Stack = string(stack)
		}
	}
	return evt, true
}

const displayLayout = "2006-01-02 15:04:05"

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	// Date-only values are UTC midnight.
	"2006-01-02",
}

// Zone-less layouts are read as local wall-clock time.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// FormatTimestamp renders a parseable timestamp in local time. Anything it
// cannot parse is returned verbatim.
func FormatTimestamp(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.In(time.Local).Format(displayLayout)
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t.Format(displayLayout)
		}
	}
	return value
}
