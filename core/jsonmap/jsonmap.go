package jsonmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrNotObject is returned when a JSON document that must be an object is
// something else (array, string, number, boolean).
var ErrNotObject = errors.New("jsonmap: value is not a JSON object")

// Member is a single key/value pair of an [Object].
type Member struct {
	Key   string
	Value json.RawMessage
}

// Object is an ordered JSON object. The zero value is an empty object and
// encodes as {}.
type Object []Member

// String creates a member holding a JSON string.
func String(key, value string) Member {
	// Marshaling a Go string cannot fail.
	encoded, _ := json.Marshal(value)
	return Member{Key: key, Value: encoded}
}

// Int creates a member holding a JSON number.
func Int(key string, value int) Member {
	return Member{Key: key, Value: json.RawMessage(strconv.Itoa(value))}
}

// Bool creates a member holding a JSON boolean.
func Bool(key string, value bool) Member {
	return Member{Key: key, Value: json.RawMessage(strconv.FormatBool(value))}
}

// Raw creates a member from an already-encoded JSON value. The value is not
// validated here; encoding the enclosing object fails if it is malformed.
func Raw(key string, value json.RawMessage) Member {
	return Member{Key: key, Value: value}
}

// Any creates a member by JSON-encoding value.
func Any(key string, value any) (Member, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return Member{}, fmt.Errorf("jsonmap: encode %q: %w", key, err)
	}
	return Member{Key: key, Value: encoded}, nil
}

// FromMap builds an Object from a Go map. Map iteration order is random, so
// keys are sorted to keep the output deterministic.
func FromMap(m map[string]any) (Object, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	obj := make(Object, 0, len(keys))
	for _, k := range keys {
		member, err := Any(k, m[k])
		if err != nil {
			return nil, err
		}
		obj = append(obj, member)
	}
	return obj, nil
}

// Len returns the number of members.
func (o Object) Len() int {
	return len(o)
}

// Keys returns the member keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Get returns the raw value stored under key.
func (o Object) Get(key string) (json.RawMessage, bool) {
	if i := o.index(key); i >= 0 {
		return o[i].Value, true
	}
	return nil, false
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	return o.index(key) >= 0
}

// Decode unmarshals the value stored under key into out.
func (o Object) Decode(key string, out any) error {
	raw, ok := o.Get(key)
	if !ok {
		return fmt.Errorf("jsonmap: key %q not found", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("jsonmap: decode %q: %w", key, err)
	}
	return nil
}

// Set encodes value and stores it under key. An existing key keeps its
// position; a new key is appended.
func (o *Object) Set(key string, value any) error {
	member, err := Any(key, value)
	if err != nil {
		return err
	}
	o.put(member)
	return nil
}

// SetRaw stores an already-encoded value under key.
func (o *Object) SetRaw(key string, value json.RawMessage) {
	o.put(Member{Key: key, Value: value})
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i := o.index(key)
	if i < 0 {
		return false
	}
	*o = append((*o)[:i], (*o)[i+1:]...)
	return true
}

// Clone returns a deep copy.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for i, m := range o {
		out[i] = Member{Key: m.Key, Value: append(json.RawMessage(nil), m.Value...)}
	}
	return out
}

// MarshalJSON writes the members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(m.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		if !json.Valid(m.Value) {
			return nil, fmt.Errorf("jsonmap: invalid JSON value for key %q", m.Key)
		}
		buf.Write(m.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping document order. When a key is
// repeated, the first position is kept and the last value wins. A JSON null
// leaves the object nil.
func (o *Object) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	out := make(Object, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("jsonmap: unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("jsonmap: decode %q: %w", key, err)
		}
		out.put(Member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}

func (o *Object) put(member Member) {
	if i := o.index(member.Key); i >= 0 {
		(*o)[i].Value = member.Value
		return
	}
	*o = append(*o, member)
}

func (o Object) index(key string) int {
	for i, m := range o {
		if m.Key == key {
			return i
		}
	}
	return -1
}
