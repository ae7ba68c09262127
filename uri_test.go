package serde_test

import (
	"net/url"
	"testing"

	"github.com/indigo-web/serde"
	"github.com/indigo-web/serde/tokens"
	"github.com/stretchr/testify/require"
)

func TestURI(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		u, err := url.Parse("https://servo.org/index.html?lang=fr#top")
		require.NoError(t, err)

		toks := []tokens.Token{tokens.Str("https://servo.org/index.html?lang=fr#top")}
		assertSerTokens(t, u, toks)
		assertDeTokens(t, u, toks)
	})

	t.Run("relative reference", func(t *testing.T) {
		u, err := url.Parse("/just/a/path")
		require.NoError(t, err)
		assertRoundTrip(t, u)
	})

	t.Run("unparsable", func(t *testing.T) {
		d := tokens.NewDeserializer([]tokens.Token{tokens.Str("http://bad\x7fhost/")})
		_, err := serde.Decode[*url.URL](d)
		require.ErrorIs(t, err, serde.ErrInvalidValue)
	})
}
