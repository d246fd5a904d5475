// SPDX-License-Identifier: MPL-2.0

package ledger

import (
	"encoding/json"
	"fmt"
	"time"
)

// localLayout is a timestamp without zone offset, read as local time.
const localLayout = "2006-01-02T15:04:05.9999999"

// Timestamp is a time.Time that also accepts ISO 8601 values without a zone
// offset when decoding. It always encodes as RFC 3339 with nanoseconds.
type Timestamp struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	if v, err := time.ParseInLocation(localLayout, s, time.Local); err == nil {
		t.Time = v
		return nil
	}
	return fmt.Errorf("timestamp: unrecognized format %q", s)
}
