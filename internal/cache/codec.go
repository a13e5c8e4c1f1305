package cache

import "github.com/vmihailenco/msgpack/v5"

// Encode serializes a cached payload with msgpack. Payloads are entity or
// list values and must round-trip structurally, nested arrays included.
func Encode[V any](v V) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes a cached payload.
func Decode[V any](b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
