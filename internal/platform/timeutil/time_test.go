package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeMarshalFixedMillis(t *testing.T) {
	ts := NewTime(time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC))

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-01-15T10:30:00.123Z"` {
		t.Fatalf("unexpected output %s", data)
	}
}

func TestTimeMarshalConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	ts := NewTime(time.Date(2024, 1, 15, 12, 0, 0, 0, loc))

	data, _ := json.Marshal(ts)
	if string(data) != `"2024-01-15T10:00:00.000Z"` {
		t.Fatalf("unexpected output %s", data)
	}
}

func TestTimeUnmarshalNullPreservesValue(t *testing.T) {
	original := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	ts := NewTime(original)

	if err := json.Unmarshal([]byte("null"), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ts.Equal(original) {
		t.Fatalf("expected value to be preserved, got %v", ts.Time)
	}
}

func TestTimeUnmarshalRejectsGarbage(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected error for non RFC 3339 input")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-07")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-03-07" {
		t.Fatalf("expected 2025-03-07, got %s", got)
	}

	for _, bad := range []string{"", "2025-3-7", "07.03.2025", "2025-02-30"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
