package serde

import (
	"fmt"

	"github.com/indigo-web/indigo/http/status"
)

// The status codec transmits the bare numeric code. Earlier generations of
// this shim carried a (code, reason) pair, but the reason phrase is derived
// from the code nowadays and transmitting it would be redundant.

func decodeStatus(d Deserializer) (status.Code, error) {
	code, err := d.ReadInt()
	if err != nil {
		return 0, err
	}

	if code < 100 || code > 999 {
		return 0, fmt.Errorf("%w: status code %d is out of range", ErrInvalidValue, code)
	}

	return status.Code(code), nil
}

func encodeStatus(s Serializer, code status.Code) error {
	return s.WriteInt(int(code))
}
