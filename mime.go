package serde

import (
	"fmt"
	"strings"

	"github.com/indigo-web/indigo/http/mime"
)

func decodeMIME(d Deserializer) (mime.MIME, error) {
	token, err := d.ReadString()
	if err != nil {
		return "", err
	}

	m, err := parseMIME(token)
	if err != nil {
		return "", fmt.Errorf("%w: could not parse mime type: %w", ErrInvalidValue, err)
	}

	return m, nil
}

// encodeMIME writes the canonical string form, which the value already is:
// indigo represents MIMEs as plain strings, and decodeMIME canonicalizes on
// the way in.
func encodeMIME(s Serializer, m mime.MIME) error {
	return s.WriteString(string(m))
}

// parseMIME validates type/subtype[;params] syntax and returns the canonical
// form: type and subtype lowercased, parameter keys lowercased, parameter
// values preserved as given.
func parseMIME(str string) (mime.MIME, error) {
	value, params := cutHeader(str)

	slash := strings.IndexByte(value, '/')
	if slash == -1 {
		return "", fmt.Errorf("missing subtype in %q", str)
	}

	mtype, subtype := value[:slash], value[slash+1:]
	if !isToken(mtype) || !isToken(subtype) {
		return "", fmt.Errorf("bad type or subtype in %q", str)
	}

	canonical := strings.ToLower(value)
	for len(params) > 0 {
		var param string
		param, params = cutParam(params)

		key, pvalue, found := strings.Cut(param, "=")
		if !found || !isToken(key) || len(pvalue) == 0 {
			return "", fmt.Errorf("malformed parameter %q", param)
		}

		canonical += "; " + strings.ToLower(key) + "=" + pvalue
	}

	return canonical, nil
}

func cutHeader(str string) (value, params string) {
	if sep := strings.IndexByte(str, ';'); sep != -1 {
		return str[:sep], lstripWS(str[sep+1:])
	}

	return str, ""
}

func cutParam(params string) (param, rest string) {
	if sep := strings.IndexByte(params, ';'); sep != -1 {
		return params[:sep], lstripWS(params[sep+1:])
	}

	return params, ""
}

func lstripWS(str string) string {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

// isToken reports whether str is a non-empty RFC 7230 token.
func isToken(str string) bool {
	if len(str) == 0 {
		return false
	}

	for i := 0; i < len(str); i++ {
		if !isTchar(str[i]) {
			return false
		}
	}

	return true
}

func isTchar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}

	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}

	return false
}
