// Package msgpack implements a serde backend on top of
// github.com/vmihailenco/msgpack. Unlike JSON, the format carries container
// lengths on the wire, so map and sequence sizes must be known upfront.
package msgpack

import (
	"bytes"
	"errors"
	"io"

	"github.com/indigo-web/serde"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

var (
	_ serde.Serializer   = (*Serializer)(nil)
	_ serde.Deserializer = (*Deserializer)(nil)
)

// Marshal encodes a single supported value into its msgpack representation.
func Marshal[T serde.Supported](value *T) ([]byte, error) {
	var buf bytes.Buffer

	if err := serde.Encode(NewSerializer(&buf), value); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes a single supported value from msgpack.
func Unmarshal[T serde.Supported](data []byte) (T, error) {
	return serde.Decode[T](NewDeserializer(bytes.NewReader(data)))
}

type Serializer struct {
	enc *msgpack.Encoder
}

func NewSerializer(w io.Writer) *Serializer {
	return &Serializer{enc: msgpack.NewEncoder(w)}
}

func (s *Serializer) WriteString(str string) error {
	return s.enc.EncodeString(str)
}

func (s *Serializer) WriteBytes(b []byte) error {
	return s.enc.EncodeBytes(b)
}

func (s *Serializer) WriteInt(n int) error {
	return s.enc.EncodeInt(int64(n))
}

func (s *Serializer) WriteMapStart(size int) error {
	if size < 0 {
		return errors.New("msgpack: map length must be known upfront")
	}

	return s.enc.EncodeMapLen(size)
}

func (s *Serializer) WriteMapKey(key string) error {
	return s.enc.EncodeString(key)
}

func (s *Serializer) WriteMapEnd() error {
	// container ends aren't a thing in msgpack, the declared length is all
	return nil
}

func (s *Serializer) WriteSeqStart(size int) error {
	if size < 0 {
		return errors.New("msgpack: sequence length must be known upfront")
	}

	return s.enc.EncodeArrayLen(size)
}

func (s *Serializer) WriteSeqEnd() error {
	return nil
}

type Deserializer struct {
	dec *msgpack.Decoder
	// remaining holds the entry countdown for every open container. A bare
	// scalar promoted to a one-element sequence simply enters as 1.
	remaining []int
}

func NewDeserializer(r io.Reader) *Deserializer {
	return &Deserializer{dec: msgpack.NewDecoder(r)}
}

func (d *Deserializer) ReadString() (string, error) {
	return d.dec.DecodeString()
}

func (d *Deserializer) ReadBytes() ([]byte, error) {
	return d.dec.DecodeBytes()
}

func (d *Deserializer) ReadInt() (int, error) {
	return d.dec.DecodeInt()
}

func (d *Deserializer) ReadNil() (bool, error) {
	code, err := d.dec.PeekCode()
	if err != nil {
		return false, err
	}

	if code != msgpcode.Nil {
		return false, nil
	}

	return true, d.dec.DecodeNil()
}

func (d *Deserializer) ReadMapStart() (int, error) {
	size, err := d.dec.DecodeMapLen()
	if err != nil {
		return 0, err
	}

	d.remaining = append(d.remaining, size)
	return size, nil
}

func (d *Deserializer) ReadMapKey() (string, bool, error) {
	top := len(d.remaining) - 1
	if d.remaining[top] == 0 {
		d.remaining = d.remaining[:top]
		return "", false, nil
	}

	d.remaining[top]--

	key, err := d.dec.DecodeString()
	return key, err == nil, err
}

func (d *Deserializer) ReadSeqStart() (int, error) {
	code, err := d.dec.PeekCode()
	if err != nil {
		return 0, err
	}

	if !isArray(code) {
		// bare scalar in sequence position: pretend it is a one-element
		// sequence, the element read consumes it
		d.remaining = append(d.remaining, 1)
		return 1, nil
	}

	size, err := d.dec.DecodeArrayLen()
	if err != nil {
		return 0, err
	}

	d.remaining = append(d.remaining, size)
	return size, nil
}

func (d *Deserializer) ReadSeqNext() (bool, error) {
	top := len(d.remaining) - 1
	if d.remaining[top] == 0 {
		d.remaining = d.remaining[:top]
		return false, nil
	}

	d.remaining[top]--
	return true, nil
}

func isArray(code byte) bool {
	return msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32
}
