package api

import (
	"encoding/json"
	"io"
	"testing"
	"time"
)

func TestTimestamp_DecodesStringNumberAndNull(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Timestamp
	}{
		{"string", `{"timestamp":"2025-12-13 10:11:12"}`, "2025-12-13 10:11:12"},
		{"integer", `{"timestamp":1734084672}`, "1734084672"},
		{"float", `{"timestamp":1734084672.5}`, "1734084672.5"},
		{"null", `{"timestamp":null}`, ""},
		{"missing", `{}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var q Quote
			if err := json.Unmarshal([]byte(tc.in), &q); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if q.Timestamp != tc.want {
				t.Fatalf("Timestamp = %q, want %q", q.Timestamp, tc.want)
			}
		})
	}
}

func TestTimestamp_RejectsObjects(t *testing.T) {
	var q Quote
	if err := json.Unmarshal([]byte(`{"timestamp":{"at":1}}`), &q); err == nil {
		t.Fatalf("Unmarshal returned nil error, want error for object timestamp")
	}
}

func TestTimestamp_ParsedTime(t *testing.T) {
	if got := Timestamp("2025-12-13T10:11:12Z").ParsedTime(); got.IsZero() || got.Hour() != 10 {
		t.Fatalf("RFC3339 ParsedTime = %v", got)
	}
	got := Timestamp("2025-12-13 10:11:12").ParsedTime()
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 13 {
		t.Fatalf("service layout ParsedTime = %v, want 2025-12-13", got)
	}
	if got := Timestamp("1700000000").ParsedTime(); got.Unix() != 1700000000 {
		t.Fatalf("unix seconds ParsedTime = %v", got)
	}
	if got := Timestamp("1700000000123").ParsedTime(); got.UnixMilli() != 1700000000123 {
		t.Fatalf("unix millis ParsedTime = %v", got)
	}
	if !Timestamp("soon").ParsedTime().IsZero() {
		t.Fatalf("unparseable timestamp should give zero time")
	}
	if !Timestamp("").ParsedTime().IsZero() {
		t.Fatalf("empty timestamp should give zero time")
	}
}

func TestFile_FromBytesAndExt(t *testing.T) {
	f := FileFromBytes("Quote.JSON", "", []byte("{}"))
	if f.Type != "application/json" {
		t.Fatalf("Type = %q, want application/json", f.Type)
	}
	if !f.HasExt(".json") {
		t.Fatalf("HasExt(.json) = false, want true for %q", f.Name)
	}
	if f.HasExt(".csv") {
		t.Fatalf("HasExt(.csv) = true, want false")
	}
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "{}" {
		t.Fatalf("content = %q, want {}", data)
	}

	other := FileFromBytes("notes.bin", "", nil)
	if other.Type != "application/octet-stream" {
		t.Fatalf("unknown type = %q, want application/octet-stream", other.Type)
	}
}

func TestFile_ZeroValueCannotOpen(t *testing.T) {
	if _, err := (File{Name: "x.json"}).Open(); err == nil {
		t.Fatalf("Open on zero File returned nil error")
	}
}
