package serde_test

import (
	"testing"

	"github.com/indigo-web/serde"
	"github.com/indigo-web/serde/tokens"
	"github.com/stretchr/testify/require"
)

// assertSerTokens encodes the value and compares the produced token stream
// against the wanted one.
func assertSerTokens[T serde.Supported](t *testing.T, value T, want []tokens.Token) {
	t.Helper()

	s := tokens.NewSerializer()
	require.NoError(t, serde.Encode(s, &value))
	require.Equal(t, want, s.Tokens())
}

// assertDeTokens decodes the token stream and compares the result against the
// wanted value, making sure the stream got fully consumed.
func assertDeTokens[T serde.Supported](t *testing.T, want T, toks []tokens.Token) {
	t.Helper()

	d := tokens.NewDeserializer(toks)
	value, err := serde.Decode[T](d)
	require.NoError(t, err)
	require.True(t, serde.Equal(want, value), "decoded value differs from the wanted one")
	require.Empty(t, d.Leftover())
}

/// assertRoundTrip checks the round-trip law: decode(encode(v)) == v.
func assertRoundTrip[T serde.Supported](t *testing.T, value T) {
	t.Helper()

	s := tokens.NewSerializer()
	require.NoError(t, serde.Encode(s, &value))
	assertDeTokens(t, value, s.Tokens())
}
