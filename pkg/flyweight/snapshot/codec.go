package snapshot

import "encoding/json"

// Codec converts registry keys and payloads to their persisted form.
//
// Keys encode to strings so stores can index them; payloads encode to
// bytes. Encoding must be deterministic for a given key, since the
// encoded key identifies the entry on load.
type Codec[K comparable, V any] interface {
	// EncodeKey converts a key to its storage form.
	EncodeKey(key K) (string, error)

	// DecodeKey reverses EncodeKey.
	DecodeKey(s string) (K, error)

	// EncodeValue converts a payload to its storage form.
	EncodeValue(value V) ([]byte, error)

	// DecodeValue reverses EncodeValue.
	DecodeValue(payload []byte) (V, error)
}

// JSONCodec returns a Codec backed by encoding/json.
//
// Struct keys encode to their JSON object form, which is deterministic
// because encoding/json emits fields in declaration order. Pointer
// payloads decode to freshly allocated values.
func JSONCodec[K comparable, V any]() Codec[K, V] {
	return jsonCodec[K, V]{}
}

// jsonCodec implements Codec using encoding/json.
type jsonCodec[K comparable, V any] struct{}

// Compile-time interface check.
var _ Codec[string, int] = jsonCodec[string, int]{}

// EncodeKey implements Codec.
func (jsonCodec[K, V]) EncodeKey(key K) (string, error) {
	b, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeKey implements Codec.
func (jsonCodec[K, V]) DecodeKey(s string) (K, error) {
	var key K
	if err := json.Unmarshal([]byte(s), &key); err != nil {
		var zero K
		return zero, err
	}
	return key, nil
}

// EncodeValue implements Codec.
func (jsonCodec[K, V]) EncodeValue(value V) ([]byte, error) {
	return json.Marshal(value)
}

// DecodeValue implements Codec.
func (jsonCodec[K, V]) DecodeValue(payload []byte) (V, error) {
	var value V
	if err := json.Unmarshal(payload, &value); err != nil {
		var zero V
		return zero, err
	}
	return value, nil
}
