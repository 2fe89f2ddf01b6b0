package save

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// envelope wraps the payload with its checksum so both travel together
// through any store backend.
type envelope struct {
	Payload  json.RawMessage `json:"payload"`
	Checksum string          `json:"checksum"`
}

// Encode sanitizes the snapshot, stamps the current version and wraps the
// JSON payload with a SHA-256 checksum.
func Encode(d *Data) ([]byte, error) {
	if d == nil {
		d = NewData()
	}
	d.Version = CurrentVersion
	d.Sanitize()
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	env := envelope{Payload: payload, Checksum: checksum(payload)}
	return json.Marshal(env)
}

// Decode parses an encoded snapshot. A corrupt envelope, a checksum
// mismatch or an unreadable payload all fall back to a fresh save rather
// than surfacing tampered values.
func Decode(raw []byte) *Data {
	if len(raw) == 0 {
		return NewData()
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Payload) == 0 {
		return NewData()
	}
	if env.Checksum != "" && !strings.EqualFold(env.Checksum, checksum(env.Payload)) {
		return NewData()
	}
	var d Data
	if err := json.Unmarshal(env.Payload, &d); err != nil {
		return NewData()
	}
	if d.Version < CurrentVersion {
		// Migration is defaults plus sanitize for now.
		d.Version = CurrentVersion
	}
	d.Sanitize()
	return &d
}

func checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
