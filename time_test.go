package serde_test

import (
	"testing"
	"time"

	"github.com/indigo-web/serde"
	"github.com/indigo-web/serde/tokens"
	"github.com/stretchr/testify/require"
)

func TestTime(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		moment := time.Date(2017, time.February, 22, 12, 3, 31, 0, time.UTC)

		toks := []tokens.Token{tokens.Str("2017-02-22T12:03:31Z")}
		assertSerTokens(t, moment, toks)
		assertDeTokens(t, moment, toks)
	})

	t.Run("encode normalizes to UTC", func(t *testing.T) {
		kyiv := time.FixedZone("EEST", 3*60*60)
		moment := time.Date(2017, time.February, 22, 15, 3, 31, 0, kyiv)

		assertSerTokens(t, moment, []tokens.Token{tokens.Str("2017-02-22T12:03:31Z")})
	})

	t.Run("unparsable", func(t *testing.T) {
		d := tokens.NewDeserializer([]tokens.Token{tokens.Str("yesterday")})
		_, err := serde.Decode[time.Time](d)
		require.ErrorIs(t, err, serde.ErrInvalidValue)
	})
}
