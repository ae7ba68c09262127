// Package tokens implements an in-memory serde backend. The serializer
// records every written token, the deserializer replays a prepared token
// slice. Its main consumers are tests that need to assert the exact wire shape
// of a codec without committing to a concrete format.
package tokens

import (
	"fmt"

	"github.com/indigo-web/serde"
)

var (
	_ serde.Serializer   = (*Serializer)(nil)
	_ serde.Deserializer = (*Deserializer)(nil)
)

type Kind uint8

const (
	KindString Kind = iota + 1
	KindBytes
	KindInt
	KindNil
	KindMapStart
	KindMapEnd
	KindSeqStart
	KindSeqEnd
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindInt:
		return "int"
	case KindNil:
		return "nil"
	case KindMapStart:
		return "map start"
	case KindMapEnd:
		return "map end"
	case KindSeqStart:
		return "seq start"
	case KindSeqEnd:
		return "seq end"
	}

	return "unknown"
}

// Token is a single unit of structured data. Size accompanies the container
// start kinds and is -1 when the container length wasn't declared.
type Token struct {
	Kind  Kind
	Str   string
	Bytes []byte
	Int   int
	Size  int
}

func Str(str string) Token    { return Token{Kind: KindString, Str: str} }
func Bytes(b []byte) Token    { return Token{Kind: KindBytes, Bytes: b} }
func Int(n int) Token         { return Token{Kind: KindInt, Int: n} }
func Nil() Token              { return Token{Kind: KindNil} }
func MapStart(size int) Token { return Token{Kind: KindMapStart, Size: size} }
func MapEnd() Token           { return Token{Kind: KindMapEnd} }
func SeqStart(size int) Token { return Token{Kind: KindSeqStart, Size: size} }
func SeqEnd() Token           { return Token{Kind: KindSeqEnd} }

// Serializer records written tokens in order.
type Serializer struct {
	tokens []Token
}

func NewSerializer() *Serializer {
	return new(Serializer)
}

// Tokens exposes everything recorded so far.
func (s *Serializer) Tokens() []Token {
	return s.tokens
}

func (s *Serializer) WriteString(str string) error {
	return s.push(Str(str))
}

func (s *Serializer) WriteBytes(b []byte) error {
	return s.push(Bytes(b))
}

func (s *Serializer) WriteInt(n int) error {
	return s.push(Int(n))
}

func (s *Serializer) WriteMapStart(size int) error {
	return s.push(MapStart(size))
}

func (s *Serializer) WriteMapKey(key string) error {
	return s.push(Str(key))
}

func (s *Serializer) WriteMapEnd() error {
	return s.push(MapEnd())
}

func (s *Serializer) WriteSeqStart(size int) error {
	return s.push(SeqStart(size))
}

func (s *Serializer) WriteSeqEnd() error {
	return s.push(SeqEnd())
}

func (s *Serializer) push(t Token) error {
	s.tokens = append(s.tokens, t)
	return nil
}

// Deserializer replays a token slice.
type Deserializer struct {
	tokens []Token
	pos    int

	// set when a bare scalar got promoted to a one-element sequence
	scalar         bool
	consumedScalar bool
}

func NewDeserializer(tokens []Token) *Deserializer {
	return &Deserializer{tokens: tokens}
}

// Leftover returns the tokens that weren't consumed. A successful decode is
// expected to leave none behind.
func (d *Deserializer) Leftover() []Token {
	return d.tokens[d.pos:]
}

func (d *Deserializer) ReadString() (string, error) {
	t, err := d.next(KindString)
	if err != nil {
		return "", err
	}

	return t.Str, nil
}

func (d *Deserializer) ReadBytes() ([]byte, error) {
	t, err := d.peek()
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case KindBytes:
		d.pos++
		return t.Bytes, nil
	case KindString:
		// formats without a dedicated bytes shape transmit them as text
		d.pos++
		return []byte(t.Str), nil
	}

	return nil, mismatch(KindBytes, t.Kind)
}

func (d *Deserializer) ReadInt() (int, error) {
	t, err := d.next(KindInt)
	if err != nil {
		return 0, err
	}

	return t.Int, nil
}

func (d *Deserializer) ReadNil() (bool, error) {
	t, err := d.peek()
	if err != nil {
		return false, err
	}

	if t.Kind == KindNil {
		d.pos++
		return true, nil
	}

	return false, nil
}

func (d *Deserializer) ReadMapStart() (int, error) {
	t, err := d.next(KindMapStart)
	if err != nil {
		return 0, err
	}

	return t.Size, nil
}

func (d *Deserializer) ReadMapKey() (string, bool, error) {
	t, err := d.peek()
	if err != nil {
		return "", false, err
	}

	switch t.Kind {
	case KindMapEnd:
		d.pos++
		return "", false, nil
	case KindString:
		d.pos++
		return t.Str, true, nil
	}

	return "", false, mismatch(KindString, t.Kind)
}

func (d *Deserializer) ReadSeqStart() (int, error) {
	t, err := d.peek()
	if err != nil {
		return 0, err
	}

	if t.Kind == KindSeqStart {
		d.pos++
		return t.Size, nil
	}

	// a bare scalar in sequence position reads as a one-element sequence
	d.scalar = true
	return 1, nil
}

func (d *Deserializer) ReadSeqNext() (bool, error) {
	if d.scalar {
		if d.consumedScalar {
			d.scalar, d.consumedScalar = false, false
			return false, nil
		}

		d.consumedScalar = true
		return true, nil
	}

	t, err := d.peek()
	if err != nil {
		return false, err
	}

	if t.Kind == KindSeqEnd {
		d.pos++
		return false, nil
	}

	return true, nil
}

func (d *Deserializer) peek() (Token, error) {
	if d.pos >= len(d.tokens) {
		return Token{}, fmt.Errorf("tokens: unexpected end of stream")
	}

	return d.tokens[d.pos], nil
}

func (d *Deserializer) next(kind Kind) (Token, error) {
	t, err := d.peek()
	if err != nil {
		return Token{}, err
	}

	if t.Kind != kind {
		return Token{}, mismatch(kind, t.Kind)
	}

	d.pos++
	return t, nil
}

func mismatch(want, got Kind) error {
	return fmt.Errorf("tokens: expected %s, got %s", want, got)
}
