package tokens

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializerRecords(t *testing.T) {
	s := NewSerializer()
	require.NoError(t, s.WriteMapStart(1))
	require.NoError(t, s.WriteMapKey("Host"))
	require.NoError(t, s.WriteSeqStart(1))
	require.NoError(t, s.WriteBytes([]byte("baguette")))
	require.NoError(t, s.WriteSeqEnd())
	require.NoError(t, s.WriteMapEnd())

	require.Equal(t, []Token{
		MapStart(1),
		Str("Host"),
		SeqStart(1),
		Bytes([]byte("baguette")),
		SeqEnd(),
		MapEnd(),
	}, s.Tokens())
}

func TestDeserializer(t *testing.T) {
	t.Run("replay", func(t *testing.T) {
		d := NewDeserializer([]Token{Str("hello"), Int(42)})

		str, err := d.ReadString()
		require.NoError(t, err)
		require.Equal(t, "hello", str)

		n, err := d.ReadInt()
		require.NoError(t, err)
		require.Equal(t, 42, n)
		require.Empty(t, d.Leftover())
	})

	t.Run("kind mismatch", func(t *testing.T) {
		d := NewDeserializer([]Token{Int(42)})
		_, err := d.ReadString()
		require.EqualError(t, err, "tokens: expected string, got int")
	})

	t.Run("end of stream", func(t *testing.T) {
		d := NewDeserializer(nil)
		_, err := d.ReadString()
		require.Error(t, err)
	})

	t.Run("bytes read from string token", func(t *testing.T) {
		d := NewDeserializer([]Token{Str("baguette")})
		b, err := d.ReadBytes()
		require.NoError(t, err)
		require.Equal(t, []byte("baguette"), b)
	})

	t.Run("nil is optional", func(t *testing.T) {
		d := NewDeserializer([]Token{Nil(), Str("after")})

		isNil, err := d.ReadNil()
		require.NoError(t, err)
		require.True(t, isNil)

		isNil, err = d.ReadNil()
		require.NoError(t, err)
		require.False(t, isNil)

		str, err := d.ReadString()
		require.NoError(t, err)
		require.Equal(t, "after", str)
	})

	t.Run("map iteration", func(t *testing.T) {
		d := NewDeserializer([]Token{MapStart(1), Str("key"), Int(1), MapEnd()})

		size, err := d.ReadMapStart()
		require.NoError(t, err)
		require.Equal(t, 1, size)

		key, ok, err := d.ReadMapKey()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "key", key)

		_, err = d.ReadInt()
		require.NoError(t, err)

		_, ok, err = d.ReadMapKey()
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, d.Leftover())
	})

	t.Run("scalar promoted to sequence", func(t *testing.T) {
		d := NewDeserializer([]Token{Str("lonely")})

		size, err := d.ReadSeqStart()
		require.NoError(t, err)
		require.Equal(t, 1, size)

		more, err := d.ReadSeqNext()
		require.NoError(t, err)
		require.True(t, more)

		b, err := d.ReadBytes()
		require.NoError(t, err)
		require.Equal(t, []byte("lonely"), b)

		more, err = d.ReadSeqNext()
		require.NoError(t, err)
		require.False(t, more)
		require.Empty(t, d.Leftover())
	})
}
