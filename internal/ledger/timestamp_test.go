// SPDX-License-Identifier: MPL-2.0

package ledger

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampJSON(t *testing.T) {
	t.Parallel()

	ts := Timestamp{time.Date(2024, 2, 29, 23, 59, 58, 123456789, time.UTC)}
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-02-29T23:59:58.123456789Z"` {
		t.Errorf("Marshal = %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(ts.Time) {
		t.Errorf("round trip = %v, want %v", back, ts)
	}
}

func TestTimestampUnmarshalInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`"yesterday"`, `42`, `"2024-13-01T00:00:00"`} {
		var ts Timestamp
		if err := json.Unmarshal([]byte(in), &ts); err == nil {
			t.Errorf("Unmarshal(%s) = %v, want error", in, ts)
		}
	}
}
