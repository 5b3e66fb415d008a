package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const serviceTimestampLayout = "2006-01-02 15:04:05"

// RootResponse mirrors the payload returned by GET /.
type RootResponse struct {
	Message string `json:"message"`
}

// Quote mirrors the record returned by POST /upload.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	DayHigh       float64   `json:"day_high"`
	DayLow        float64   `json:"day_low"`
	PreviousClose float64   `json:"previous_close"`
	Timestamp     Timestamp `json:"timestamp"`
}

// Timestamp keeps the service's timestamp exactly as sent. Services emit
// either a string or a number, so both decode.
type Timestamp string

// UnmarshalJSON accepts a JSON string, a JSON number, or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = Timestamp(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*t = Timestamp(n.String())
	return nil
}

// String returns the timestamp verbatim.
func (t Timestamp) String() string {
	return string(t)
}

// ParsedTime returns the timestamp as time.Time when possible. Numeric values
// are read as Unix seconds, or milliseconds when they are too large to be
// seconds.
func (t Timestamp) ParsedTime() time.Time {
	value := strings.TrimSpace(string(t))
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	if parsed, err := time.ParseInLocation(serviceTimestampLayout, value, time.Local); err == nil {
		return parsed
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		if secs > 1e11 {
			return time.UnixMilli(int64(secs))
		}
		return time.Unix(int64(secs), 0)
	}
	return time.Time{}
}
