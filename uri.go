package serde

import (
	"fmt"
	"net/url"
)

func decodeURI(d Deserializer) (*url.URL, error) {
	token, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse uri: %w", ErrInvalidValue, err)
	}

	return u, nil
}

func encodeURI(s Serializer, u *url.URL) error {
	return s.WriteString(u.String())
}
