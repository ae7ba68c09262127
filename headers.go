package serde

import (
	"github.com/indigo-web/indigo/kv"
	"github.com/indigo-web/utils/uf"
)

// decodeHeaders populates a fresh collection from either a nil token (empty
// collection) or a map of name -> sequence of raw byte-string values. Every
// encountered pair is appended, never overwritten, so a name appearing in two
// map entries ends up holding both value lists.
func decodeHeaders(d Deserializer) (*kv.Storage, error) {
	if isNil, err := d.ReadNil(); err != nil {
		return nil, err
	} else if isNil {
		return kv.New(), nil
	}

	size, err := d.ReadMapStart()
	if err != nil {
		return nil, err
	}

	headers := kv.NewPrealloc(max(size, 0))

	for {
		key, ok, err := d.ReadMapKey()
		if err != nil {
			return nil, err
		}
		if !ok {
			return headers, nil
		}

		if _, err = d.ReadSeqStart(); err != nil {
			return nil, err
		}

		for {
			more, err := d.ReadSeqNext()
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}

			value, err := d.ReadBytes()
			if err != nil {
				return nil, err
			}

			headers.Add(key, string(value))
		}
	}
}

// encodeHeaders writes the collection as a map with one entry per distinct
// name, each holding the full value sequence for that name as raw
// byte-strings. The declared map length counts distinct names, not values.
// Name order follows the collection's own iteration order.
func encodeHeaders(s Serializer, headers *kv.Storage) error {
	keys := headers.Keys()

	if err := s.WriteMapStart(len(keys)); err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.WriteMapKey(key); err != nil {
			return err
		}

		values := headers.Values(key)
		if err := s.WriteSeqStart(len(values)); err != nil {
			return err
		}

		for _, value := range values {
			// the serializer consumes the bytes before returning, so an
			// unsafe view over the stored string saves a copy per value
			if err := s.WriteBytes(uf.S2B(value)); err != nil {
				return err
			}
		}

		if err := s.WriteSeqEnd(); err != nil {
			return err
		}
	}

	return s.WriteMapEnd()
}

func headersEqual(a, b *kv.Storage) bool {
	if a == nil || b == nil {
		return a == b
	}

	if a.Len() != b.Len() {
		return false
	}

	// Keys and Values reuse internal buffers, therefore a's results must be
	// copied out before touching b
	keys := clone(a.Keys())

	for _, key := range keys {
		values := clone(a.Values(key))
		other := b.Values(key)

		if len(values) != len(other) {
			return false
		}

		for i := range values {
			if values[i] != other[i] {
				return false
			}
		}
	}

	return true
}

func clone(strs []string) []string {
	return append([]string(nil), strs...)
}
