package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// legacyLayout is how older pedidos.json files stored dataPedido.
const legacyLayout = "2006-01-02 15:04:05.999999"

// Timestamp is a UTC instant encoded as RFC 3339. Decoding also accepts the
// space separated layout found in legacy order files.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range []string{time.RFC3339Nano, legacyLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}
