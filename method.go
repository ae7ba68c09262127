package serde

import (
	"fmt"

	"github.com/indigo-web/indigo/http/method"
)

func decodeMethod(d Deserializer) (method.Method, error) {
	token, err := d.ReadString()
	if err != nil {
		return method.Unknown, err
	}

	// method.Parse relies on at least two leading characters being present,
	// and no method is that short anyway
	if len(token) < 2 {
		return method.Unknown, fmt.Errorf("%w: unrecognized method %q", ErrInvalidValue, token)
	}

	m := method.Parse(token)
	if m == method.Unknown {
		return method.Unknown, fmt.Errorf("%w: unrecognized method %q", ErrInvalidValue, token)
	}

	return m, nil
}

func encodeMethod(s Serializer, m method.Method) error {
	return s.WriteString(m.String())
}
