package cookiejar

import (
	"net/http"
	"time"
)

type schemaFile struct {
	Hosts []hostSchema `toml:"host"`
}

type hostSchema struct {
	Name    string         `toml:"name"`
	Cookies []cookieSchema `toml:"cookies"`
}

type cookieSchema struct {
	Name     string    `toml:"name"`
	Value    string    `toml:"value"`
	Path     string    `toml:"path,omitempty"`
	Expires  time.Time `toml:"expires,omitempty"`
	Secure   bool      `toml:"secure,omitempty"`
	HTTPOnly bool      `toml:"http_only,omitempty"`
}

func toCookieSchema(c *http.Cookie, now time.Time) cookieSchema {
	expires := c.Expires
	if c.MaxAge > 0 {
		expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	}

	return cookieSchema{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Expires:  expires,
		Secure:   c.Secure,
		HTTPOnly: c.HttpOnly,
	}
}

func (c cookieSchema) toCookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HttpOnly: c.HTTPOnly,
	}
}

// expired reports whether the cookie carries an expiry in the past. Session
// cookies (zero expiry) are kept so the login survives process restarts.
func (c cookieSchema) expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}
