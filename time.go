package serde

import (
	"fmt"
	"time"
)

// timeLayout is a restricted RFC 3339: timestamps travel in UTC only.
const timeLayout = "2006-01-02T15:04:05Z"

func decodeTime(d Deserializer) (time.Time, error) {
	token, err := d.ReadString()
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(timeLayout, token)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: could not parse timestamp: %w", ErrInvalidValue, err)
	}

	return t, nil
}

func encodeTime(s Serializer, t time.Time) error {
	return s.WriteString(t.UTC().Format(timeLayout))
}
