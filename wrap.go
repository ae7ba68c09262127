package serde

import (
	"net/url"
	"time"

	"github.com/indigo-web/indigo/http/cookie"
	"github.com/indigo-web/indigo/http/method"
	"github.com/indigo-web/indigo/http/mime"
	"github.com/indigo-web/indigo/http/status"
	"github.com/indigo-web/indigo/kv"
)

// ContentType is the value of a Content-Type header. Indigo has no distinct
// type for it, however it still deserves a separate codec entry, as it isn't
// quite a bare MIME either.
type ContentType mime.MIME

// Supported is the closed set of types this package can encode and decode.
// Adding a type here requires a codec and an Equal case for it, nothing gets
// dispatched dynamically.
type Supported interface {
	method.Method | *kv.Storage | mime.MIME | ContentType | status.Code |
		cookie.Cookie | *url.URL | time.Time
}

// Decode reads a single value of type T from the deserializer.
func Decode[T Supported](d Deserializer) (T, error) {
	var (
		value T
		err   error
	)

	switch p := any(&value).(type) {
	case *method.Method:
		*p, err = decodeMethod(d)
	case **kv.Storage:
		*p, err = decodeHeaders(d)
	case *mime.MIME:
		*p, err = decodeMIME(d)
	case *ContentType:
		var m mime.MIME
		m, err = decodeMIME(d)
		*p = ContentType(m)
	case *status.Code:
		*p, err = decodeStatus(d)
	case *cookie.Cookie:
		*p, err = decodeCookie(d)
	case **url.URL:
		*p, err = decodeURI(d)
	case *time.Time:
		*p, err = decodeTime(d)
	}

	return value, err
}

// Encode writes the pointed-to value to the serializer. The pointee is only
// borrowed and must stay alive until the call returns; it is never modified.
// Encoding a well-formed value fails only if the serializer itself does.
func Encode[T Supported](s Serializer, value *T) error {
	switch v := any(*value).(type) {
	case method.Method:
		return encodeMethod(s, v)
	case *kv.Storage:
		return encodeHeaders(s, v)
	case mime.MIME:
		return encodeMIME(s, v)
	case ContentType:
		return encodeMIME(s, mime.MIME(v))
	case status.Code:
		return encodeStatus(s, v)
	case cookie.Cookie:
		return encodeCookie(s, v)
	case *url.URL:
		return encodeURI(s, v)
	case time.Time:
		return encodeTime(s, v)
	default:
		// the Supported constraint leaves no other option
		panic("unreachable")
	}
}

// De carries a freshly decoded value. Instances can only be obtained via
// DecodeDe, and the only thing to do with one is to unwrap it.
type De[T Supported] struct {
	value T
}

// DecodeDe reads a value of type T and hands it over still wrapped.
func DecodeDe[T Supported](d Deserializer) (De[T], error) {
	value, err := Decode[T](d)
	return De[T]{value: value}, err
}

// Unwrap consumes the wrapper, returning the decoded value.
func (de De[T]) Unwrap() T {
	return de.value
}

// Ser borrows a value for the duration of an encode call. The pointee must
// outlive every Encode call made through the wrapper.
type Ser[T Supported] struct {
	value *T
}

func NewSer[T Supported](value *T) Ser[T] {
	return Ser[T]{value: value}
}

// Encode writes the borrowed value to the serializer.
func (s Ser[T]) Encode(dst Serializer) error {
	return Encode(dst, s.value)
}

// Serde owns a value and makes it encodable and decodable without any
// per-call-site ceremony. It is meant to be embedded into larger structures:
//
//	type Session struct {
//		Headers serde.Serde[*kv.Storage]
//		Method  serde.Serde[method.Method]
//	}
//
// Access to the inner value goes through Value explicitly.
type Serde[T Supported] struct {
	value T
}

// Wrap wraps an owned value into a Serde.
func Wrap[T Supported](value T) Serde[T] {
	return Serde[T]{value: value}
}

// Value exposes the wrapped value for both reads and writes.
func (s *Serde[T]) Value() *T {
	return &s.value
}

// Equal compares the wrapped value against a bare one.
func (s *Serde[T]) Equal(other T) bool {
	return Equal(s.value, other)
}

// Decode replaces the wrapped value with one read from the deserializer.
func (s *Serde[T]) Decode(d Deserializer) error {
	value, err := Decode[T](d)
	if err != nil {
		return err
	}

	s.value = value
	return nil
}

// Encode writes the wrapped value to the serializer.
func (s *Serde[T]) Encode(dst Serializer) error {
	return Encode(dst, &s.value)
}

// Equal reports whether two supported values are equivalent. For most types
// this is plain comparison. Header collections are compared by per-name value
// sequences, so two collections listing names in different order are still
// equal as long as each name holds the same values in the same order.
func Equal[T Supported](a, b T) bool {
	switch x := any(a).(type) {
	case *kv.Storage:
		return headersEqual(x, any(b).(*kv.Storage))
	case cookie.Cookie:
		return cookiesEqual(x, any(b).(cookie.Cookie))
	case *url.URL:
		y := any(b).(*url.URL)
		if x == nil || y == nil {
			return x == y
		}

		return x.String() == y.String()
	case time.Time:
		return x.Equal(any(b).(time.Time))
	default:
		return any(a) == any(b)
	}
}

// cookiesEqual compares cookies field by field. Expires is compared as an
// instant at second resolution: the Set-Cookie date format carries neither
// sub-second precision nor a zone, so a plain struct comparison would reject
// cookies that only differ in the Expires field's location or monotonic
// reading.
func cookiesEqual(a, b cookie.Cookie) bool {
	if !a.Expires.Truncate(time.Second).Equal(b.Expires.Truncate(time.Second)) {
		return false
	}

	a.Expires, b.Expires = time.Time{}, time.Time{}
	return a == b
}
