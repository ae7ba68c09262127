package msgpack

import (
	"testing"
	"time"

	"github.com/indigo-web/indigo/http/cookie"
	"github.com/indigo-web/indigo/http/method"
	"github.com/indigo-web/indigo/http/status"
	"github.com/indigo-web/indigo/kv"
	"github.com/indigo-web/serde"
	"github.com/stretchr/testify/require"
	impl "github.com/vmihailenco/msgpack/v5"
)

func TestRoundTrip(t *testing.T) {
	t.Run("method", func(t *testing.T) {
		m := method.DELETE
		data, err := Marshal(&m)
		require.NoError(t, err)

		decoded, err := Unmarshal[method.Method](data)
		require.NoError(t, err)
		require.Equal(t, m, decoded)
	})

	t.Run("status", func(t *testing.T) {
		code := status.Teapot
		data, err := Marshal(&code)
		require.NoError(t, err)

		decoded, err := Unmarshal[status.Code](data)
		require.NoError(t, err)
		require.Equal(t, code, decoded)
	})

	t.Run("headers", func(t *testing.T) {
		headers := kv.New().
			Add("Host", "baguette").
			Add("Host", "other").
			Add("Content-Length", "15")

		data, err := Marshal(&headers)
		require.NoError(t, err)

		decoded, err := Unmarshal[*kv.Storage](data)
		require.NoError(t, err)
		require.True(t, serde.Equal(headers, decoded))
	})

	t.Run("empty headers", func(t *testing.T) {
		headers := kv.New()
		data, err := Marshal(&headers)
		require.NoError(t, err)

		decoded, err := Unmarshal[*kv.Storage](data)
		require.NoError(t, err)
		require.True(t, decoded.Empty())
	})

	t.Run("cookie", func(t *testing.T) {
		c := cookie.Build("Hello", "World!").
			MaxAge(42).
			Domain("servo.org").
			Path("/").
			Secure(true).
			Cookie()

		data, err := Marshal(&c)
		require.NoError(t, err)

		decoded, err := Unmarshal[cookie.Cookie](data)
		require.NoError(t, err)
		require.Equal(t, c, decoded)
	})

	t.Run("time", func(t *testing.T) {
		moment := time.Date(2017, time.February, 22, 12, 3, 31, 0, time.UTC)
		data, err := Marshal(&moment)
		require.NoError(t, err)

		decoded, err := Unmarshal[time.Time](data)
		require.NoError(t, err)
		require.True(t, decoded.Equal(moment))
	})
}

func TestInterop(t *testing.T) {
	t.Run("headers map with bare values", func(t *testing.T) {
		// maps produced by ordinary msgpack code carry one bare string per
		// name, which decodes as a one-element sequence
		data, err := impl.Marshal(map[string]string{"Host": "baguette"})
		require.NoError(t, err)

		headers, err := Unmarshal[*kv.Storage](data)
		require.NoError(t, err)
		require.Equal(t, []string{"baguette"}, headers.Values("Host"))
	})

	t.Run("nil decodes as empty headers", func(t *testing.T) {
		data, err := impl.Marshal(nil)
		require.NoError(t, err)

		headers, err := Unmarshal[*kv.Storage](data)
		require.NoError(t, err)
		require.True(t, headers.Empty())
	})

	t.Run("status out of range", func(t *testing.T) {
		data, err := impl.Marshal(1000)
		require.NoError(t, err)

		_, err = Unmarshal[status.Code](data)
		require.ErrorIs(t, err, serde.ErrInvalidValue)
	})
}
