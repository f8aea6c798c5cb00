package wire

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  int64
		wantErr bool
	}{
		{"structured", `{"id":1,"body":{"level":"info"}}`, 1, false},
		{"string body", `{"id":5,"body":"hello"}`, 5, false},
		{"53-bit id", `{"id":7036874417766401,"body":null}`, 7036874417766401, false},
		{"not json", `not json`, 0, true},
		{"json string", `"hello"`, 0, true},
		{"missing id", `{"body":"x"}`, 0, true},
		{"null id", `{"id":null,"body":"x"}`, 0, true},
		{"fractional id", `{"id":1.5,"body":"x"}`, 0, true},
		{"trailing garbage", `{"id":1} {`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Decode(%q) returned nil error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) returned error: %v", tt.raw, err)
			}
			if env.ID != tt.wantID {
				t.Fatalf("ID = %d, want %d", env.ID, tt.wantID)
			}
		})
	}
}

func TestParseBody_StructuredEvent(t *testing.T) {
	body := ParseBody(json.RawMessage(`{"level":"error","message":"boom","timestamp":"2024-01-01T00:00:00Z","data":{"k":"v"},"stack":"at main"}`))
	if body.Kind != BodyEvent {
		t.Fatalf("Kind = %v, want BodyEvent", body.Kind)
	}
	evt := body.Event
	if evt.Level != "error" || evt.Message != "boom" || evt.Timestamp != "2024-01-01T00:00:00Z" {
		t.Fatalf("event = %#v", evt)
	}
	data, ok := evt.Data.(map[string]any)
	if !ok || data["k"] != "v" {
		t.Fatalf("Data = %#v, want map with k=v", evt.Data)
	}
	if evt.Stack != "at main" {
		t.Fatalf("Stack = %q, want %q", evt.Stack, "at main")
	}
}

func TestParseBody_FallsThroughOnShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want BodyKind
	}{
		{"string", `"hello"`, BodyText},
		{"missing timestamp", `{"level":"info","message":"m"}`, BodyOther},
		{"numeric level", `{"level":3,"message":"m","timestamp":"t"}`, BodyOther},
		{"null level", `{"level":null,"message":"m","timestamp":"t"}`, BodyOther},
		{"null message", `{"level":"error","message":null,"timestamp":"t"}`, BodyOther},
		{"null timestamp", `{"level":"error","message":"m","timestamp":null}`, BodyOther},
		{"array", `[1,2]`, BodyOther},
		{"number", `42`, BodyOther},
		{"null", `null`, BodyOther},
		{"absent", ``, BodyOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseBody(json.RawMessage(tt.raw)).Kind; got != tt.want {
				t.Fatalf("ParseBody(%q).Kind = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := map[string]Category{
		"info":    CategoryInfo,
		"warning": CategoryWarning,
		"error":   CategoryError,
		"debug":   CategoryDebug,
		"":        CategoryLog,
		"warn":    CategoryLog,
		"INFO":    CategoryLog,
		"trace":   CategoryLog,
	}
	for level, want := range tests {
		if got := CategoryOf(level); got != want {
			t.Errorf("CategoryOf(%q) = %q, want %q", level, got, want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	oldLocal := time.Local
	time.Local = time.FixedZone("TestLocal", -5*60*60)
	defer func() {
		time.Local = oldLocal
	}()

	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01T00:00:00Z", "2023-12-31 19:00:00"},
		{"2025-12-13T10:11:12.123456789Z", "2025-12-13 05:11:12"},
		{"2025-12-13T10:11:12+02:00", "2025-12-13 03:11:12"},
		{"2025-12-13 10:11:12", "2025-12-13 10:11:12"},
		{"2024-01-01", "2023-12-31 19:00:00"},
		{"2024-01-01T10:00", "2024-01-01 10:00:00"},
		{"2024-01-01T10:00Z", "2024-01-01 05:00:00"},
		{"2024-01-01T10:00+02:00", "2024-01-01 03:00:00"},
		{"not-a-date", "not-a-date"},
		{"", ""},
		{"   ", "   "},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
