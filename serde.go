// Package serde lets indigo's HTTP value types be encoded to and decoded from
// a generic structured-data model, so they can live inside application data
// structures destined for JSON, msgpack or any other serializer implementing
// the Serializer/Deserializer contract.
//
// The package itself performs no I/O: every codec is a pure mapping between
// an in-memory value and a stream of abstract tokens. Concrete backends live
// in the json, msgpack and tokens subpackages.
package serde

import (
	"errors"
)

// ErrInvalidValue is wrapped by every validation error raised by this
// package: a token was read successfully, but cannot be turned into the
// target value. Errors produced by the backend itself (type mismatches,
// truncated input) pass through as-is.
var ErrInvalidValue = errors.New("invalid value")

// Serializer is the encode half of a serialization backend. Writes must be
// issued in token order: a map entry is WriteMapKey followed by the entry's
// value, a sequence is WriteSeqStart, its elements, WriteSeqEnd.
type Serializer interface {
	WriteString(str string) error
	WriteBytes(b []byte) error
	WriteInt(n int) error
	// WriteMapStart begins a map of size entries. Negative size stands for
	// "unknown upfront", which not every backend is able to represent.
	WriteMapStart(size int) error
	WriteMapKey(key string) error
	WriteMapEnd() error
	WriteSeqStart(size int) error
	WriteSeqEnd() error
}

// Deserializer is the decode half of a serialization backend.
type Deserializer interface {
	ReadString() (string, error)
	ReadBytes() ([]byte, error)
	ReadInt() (int, error)
	// ReadNil consumes a nil token if one is next and reports whether it did.
	ReadNil() (bool, error)
	// ReadMapStart begins a map, returning the number of entries declared by
	// the input, or -1 if the format carries no length.
	ReadMapStart() (int, error)
	// ReadMapKey returns the next entry's key. ok=false means the map is
	// exhausted; the end marker is consumed by that call.
	ReadMapKey() (key string, ok bool, err error)
	// ReadSeqStart begins a sequence, returning the declared element count or
	// -1 if unknown. When the next token is a bare scalar instead of a
	// sequence, backends synthesize a one-element sequence around it: for a
	// single value the two shapes are unambiguous.
	ReadSeqStart() (int, error)
	// ReadSeqNext must be called before each element read. more=false means
	// the sequence is exhausted; the end marker is consumed by that call.
	ReadSeqNext() (more bool, err error)
}
