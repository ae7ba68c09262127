// Package json implements a serde backend on top of json-iterator. Byte
// strings have no JSON shape of their own and travel as ordinary strings.
package json

import (
	"errors"
	"io"

	"github.com/indigo-web/serde"
	jsoniter "github.com/json-iterator/go"
)

var config = jsoniter.ConfigCompatibleWithStandardLibrary

const bufferSize = 512

var (
	_ serde.Serializer   = (*Serializer)(nil)
	_ serde.Deserializer = (*Deserializer)(nil)
)

// Marshal encodes a single supported value into its JSON representation.
func Marshal[T serde.Supported](value *T) ([]byte, error) {
	s := NewSerializer(nil)
	if err := serde.Encode(s, value); err != nil {
		return nil, err
	}

	// the stream buffer gets recycled together with the stream, hence the copy
	return append([]byte(nil), s.stream.Buffer()...), nil
}

// Unmarshal decodes a single supported value from JSON.
func Unmarshal[T serde.Supported](data []byte) (T, error) {
	return serde.Decode[T](NewDeserializer(data))
}

type frame uint8

const (
	frameMap frame = iota + 1
	frameSeq
	frameScalarSeq
	frameScalarSeqDone
)

type container struct {
	kind  frame
	first bool
}

// Serializer writes tokens as JSON. A nil writer buffers the output
// internally.
type Serializer struct {
	stream *jsoniter.Stream
	// open tracks the containers being written, for comma placement
	open []container
}

func NewSerializer(w io.Writer) *Serializer {
	return &Serializer{stream: jsoniter.NewStream(config, w, bufferSize)}
}

// Flush writes everything buffered so far to the underlying writer.
func (s *Serializer) Flush() error {
	return s.stream.Flush()
}

func (s *Serializer) WriteString(str string) error {
	s.beforeValue()
	s.stream.WriteString(str)
	return s.stream.Error
}

func (s *Serializer) WriteBytes(b []byte) error {
	s.beforeValue()
	s.stream.WriteString(string(b))
	return s.stream.Error
}

func (s *Serializer) WriteInt(n int) error {
	s.beforeValue()
	s.stream.WriteInt(n)
	return s.stream.Error
}

func (s *Serializer) WriteMapStart(int) error {
	s.beforeValue()
	s.stream.WriteObjectStart()
	s.open = append(s.open, container{kind: frameMap, first: true})
	return s.stream.Error
}

func (s *Serializer) WriteMapKey(key string) error {
	// the key begins a new map entry, so the comma separating entries goes
	// right before it; the colon comes with WriteObjectField
	top := &s.open[len(s.open)-1]
	if top.first {
		top.first = false
	} else {
		s.stream.WriteMore()
	}

	s.stream.WriteObjectField(key)
	return s.stream.Error
}

func (s *Serializer) WriteMapEnd() error {
	s.stream.WriteObjectEnd()
	s.open = s.open[:len(s.open)-1]
	return s.stream.Error
}

func (s *Serializer) WriteSeqStart(int) error {
	s.beforeValue()
	s.stream.WriteArrayStart()
	s.open = append(s.open, container{kind: frameSeq, first: true})
	return s.stream.Error
}

func (s *Serializer) WriteSeqEnd() error {
	s.stream.WriteArrayEnd()
	s.open = s.open[:len(s.open)-1]
	return s.stream.Error
}

// beforeValue places a comma when the enclosing sequence already holds
// elements. Map values need no separator of their own: their entry began at
// WriteMapKey.
func (s *Serializer) beforeValue() {
	if len(s.open) == 0 {
		return
	}

	if top := &s.open[len(s.open)-1]; top.kind == frameSeq {
		if top.first {
			top.first = false
		} else {
			s.stream.WriteMore()
		}
	}
}

// Deserializer reads tokens from JSON input.
type Deserializer struct {
	iter *jsoniter.Iterator
	// seqs tracks open sequences, including bare scalars promoted to
	// one-element sequences
	seqs []frame
}

func NewDeserializer(data []byte) *Deserializer {
	return &Deserializer{iter: jsoniter.ParseBytes(config, data)}
}

// NewStreamingDeserializer reads JSON from r instead of a prepared buffer.
func NewStreamingDeserializer(r io.Reader) *Deserializer {
	return &Deserializer{iter: jsoniter.Parse(config, r, bufferSize)}
}

func (d *Deserializer) ReadString() (string, error) {
	str := d.iter.ReadString()
	return str, d.err()
}

func (d *Deserializer) ReadBytes() ([]byte, error) {
	str := d.iter.ReadString()
	if err := d.err(); err != nil {
		return nil, err
	}

	return []byte(str), nil
}

func (d *Deserializer) ReadInt() (int, error) {
	n := d.iter.ReadInt()

	// a number is the one token with no closing delimiter: scanning a bare
	// integer document runs into the end of input and flags io.EOF even
	// though the value parsed completely. Anything actually malformed
	// surfaces as a distinct error, so a plain EOF here means success.
	if d.iter.Error == io.EOF {
		return n, nil
	}

	return n, d.err()
}

func (d *Deserializer) ReadNil() (bool, error) {
	return d.iter.ReadNil(), d.err()
}

func (d *Deserializer) ReadMapStart() (int, error) {
	if next := d.iter.WhatIsNext(); next != jsoniter.ObjectValue {
		return 0, errors.New("json: expected an object")
	}

	// JSON objects don't declare their length
	return -1, nil
}

func (d *Deserializer) ReadMapKey() (string, bool, error) {
	key := d.iter.ReadObject()
	if err := d.err(); err != nil {
		return "", false, err
	}

	// ReadObject reports both an empty key and the end of the object as "",
	// and the two cannot be told apart without poisoning the iterator's
	// sticky error state by peeking past a possibly-final brace. Empty keys
	// therefore read as end-of-map; header names are never empty anyway.
	return key, len(key) > 0, nil
}

func (d *Deserializer) ReadSeqStart() (int, error) {
	if d.iter.WhatIsNext() == jsoniter.ArrayValue {
		d.seqs = append(d.seqs, frameSeq)
		return -1, nil
	}

	// bare scalar in sequence position: pretend it is a one-element sequence
	d.seqs = append(d.seqs, frameScalarSeq)
	return 1, nil
}

func (d *Deserializer) ReadSeqNext() (bool, error) {
	top := len(d.seqs) - 1

	switch d.seqs[top] {
	case frameScalarSeq:
		d.seqs[top] = frameScalarSeqDone
		return true, nil
	case frameScalarSeqDone:
		d.seqs = d.seqs[:top]
		return false, nil
	}

	more := d.iter.ReadArray()
	if err := d.err(); err != nil {
		return false, err
	}

	if !more {
		d.seqs = d.seqs[:top]
	}

	return more, nil
}

// err surfaces the iterator's sticky error. io.EOF counts as an error too:
// none of the codecs reads past the value being decoded, so hitting the end
// of input mid-read means the input was truncated.
func (d *Deserializer) err() error {
	return d.iter.Error
}
