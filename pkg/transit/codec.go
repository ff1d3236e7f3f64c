package transit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// EncodeConnection serializes the full record. This is what gets handed from a
// result list to the detail view, so no identifier lookup is ever needed.
func EncodeConnection(c Connection) ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize connection: %w", err)
	}
	return data, nil
}

// DecodeConnection is the inverse of EncodeConnection
func DecodeConnection(r io.Reader) (Connection, error) {
	var c Connection
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Connection{}, fmt.Errorf("failed to decode connection: %w", err)
	}
	if c.From.Station.Name == "" && c.To.Station.Name == "" && len(c.Sections) == 0 {
		return Connection{}, fmt.Errorf("failed to decode connection: empty record")
	}
	return c, nil
}

// Fingerprint returns a stable content hash of the connection. encoding/json
// writes struct fields in declaration order, which makes the encoding canonical.
func Fingerprint(c Connection) string {
	data, err := json.Marshal(c)
	if err != nil {
		// Connection only holds strings, numbers and slices of them
		panic(fmt.Sprintf("transit: connection not serializable: %v", err))
	}
	sum := sha256.Sum256(bytes.TrimSpace(data))
	return hex.EncodeToString(sum[:])
}

// Equal reports whether two connections describe the same record
func Equal(a, b Connection) bool {
	return Fingerprint(a) == Fingerprint(b)
}
