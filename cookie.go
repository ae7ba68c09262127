package serde

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/indigo-web/indigo/http/cookie"
	"github.com/indigo-web/utils/strcomp"
)

// cookieTimeLayout is the Expires attribute format, RFC 1123 with the GMT
// zone fixed.
const cookieTimeLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// encodeCookie writes the cookie in Set-Cookie attribute syntax. Attribute
/// order is fixed: value first, then HttpOnly, Secure, SameSite, Path, Domain,
// Max-Age and Expires, each only when present.
func encodeCookie(s Serializer, c cookie.Cookie) error {
	var b strings.Builder

	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)

	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}

	if c.Secure {
		b.WriteString("; Secure")
	}

	if len(c.SameSite) > 0 {
		b.WriteString("; SameSite=")
		b.WriteString(c.SameSite)
	}

	if len(c.Path) > 0 {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}

	if len(c.Domain) > 0 {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}

	if c.MaxAge != 0 {
		b.WriteString("; Max-Age=")
		// negative MaxAge is indigo's way of saying "drop the cookie now"
		if c.MaxAge < 0 {
			b.WriteByte('0')
		} else {
			b.WriteString(strconv.Itoa(c.MaxAge))
		}
	}

	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(cookieTimeLayout))
	}

	return s.WriteString(b.String())
}

func decodeCookie(d Deserializer) (cookie.Cookie, error) {
	token, err := d.ReadString()
	if err != nil {
		return cookie.Cookie{}, err
	}

	c, err := parseSetCookie(token)
	if err != nil {
		return cookie.Cookie{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	return c, nil
}

// parseSetCookie parses a full Set-Cookie attribute string. Attribute names
// are matched case-insensitively, unrecognized attributes are skipped.
func parseSetCookie(data string) (cookie.Cookie, error) {
	pair, attrs := cutAttr(data)

	name, value, found := strings.Cut(pair, "=")
	if !found || len(name) == 0 {
		return cookie.Cookie{}, fmt.Errorf("set-cookie has a malformed syntax: %q", data)
	}

	c := cookie.New(name, value)

	for len(attrs) > 0 {
		var attr string
		attr, attrs = cutAttr(attrs)

		key, avalue, _ := strings.Cut(attr, "=")

		switch {
		case strcomp.EqualFold(key, "httponly"):
			c.HttpOnly = true
		case strcomp.EqualFold(key, "secure"):
			c.Secure = true
		case strcomp.EqualFold(key, "samesite"):
			c.SameSite = avalue
		case strcomp.EqualFold(key, "path"):
			c.Path = avalue
		case strcomp.EqualFold(key, "domain"):
			c.Domain = avalue
		case strcomp.EqualFold(key, "max-age"):
			seconds, err := strconv.Atoi(avalue)
			if err != nil || seconds < 0 {
				return cookie.Cookie{}, fmt.Errorf("bad max-age %q", avalue)
			}

			if seconds == 0 {
				// zero stands for "unset" in indigo, immediate expiry is
				// expressed by a negative value
				seconds = -1
			}

			c.MaxAge = seconds
		case strcomp.EqualFold(key, "expires"):
			expires, err := time.Parse(cookieTimeLayout, avalue)
			if err != nil {
				return cookie.Cookie{}, fmt.Errorf("bad expires %q", avalue)
			}

			c.Expires = expires
		}
	}

	return c, nil
}

func cutAttr(str string) (attr, rest string) {
	if sep := strings.IndexByte(str, ';'); sep != -1 {
		return str[:sep], lstripWS(str[sep+1:])
	}

	return str, ""
}
