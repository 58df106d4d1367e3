// Package cookiejar is a file-backed http.CookieJar so the session cookie
// issued at login survives between CLI invocations.
package cookiejar

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/thumlify/thumlify-cli/internal/ports"
)

const (
	sessionPathKey  = "session.path"
	sessionFileName = "session.toml"
	configDirName   = ".thumlify"

	jarDirMode  = 0o700
	jarFileMode = 0o600
)

type Jar struct {
	path  string
	clock ports.Clock

	mu    sync.Mutex
	hosts map[string][]cookieSchema
}

var _ http.CookieJar = (*Jar)(nil)

func New(cfg *viper.Viper, clock ports.Clock) (*Jar, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	path := cfg.GetString(sessionPathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, configDirName, sessionFileName)
	}

	jar := &Jar{path: filepath.Clean(path), clock: clock, hosts: map[string][]cookieSchema{}}
	if err := jar.load(); err != nil {
		return nil, err
	}
	return jar, nil
}

// SetCookies merges cookies for the URL's host and writes through to disk.
// http.CookieJar gives no way to report failures, so a write error only
// drops persistence, never the in-memory session.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if u == nil || len(cookies) == 0 {
		return
	}
	now := j.clock.Now()

	j.mu.Lock()
	defer j.mu.Unlock()

	existing := j.hosts[u.Host]
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}

		kept := existing[:0]
		for _, stored := range existing {
			if stored.Name != c.Name {
				kept = append(kept, stored)
			}
		}
		existing = kept

		if c.MaxAge < 0 {
			continue
		}
		encoded := toCookieSchema(c, now)
		if encoded.expired(now) {
			continue
		}
		existing = append(existing, encoded)
	}

	if len(existing) == 0 {
		delete(j.hosts, u.Host)
	} else {
		j.hosts[u.Host] = existing
	}

	_ = j.persistLocked()
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	if u == nil {
		return nil
	}
	now := j.clock.Now()

	j.mu.Lock()
	defer j.mu.Unlock()

	var result []*http.Cookie
	for _, stored := range j.hosts[u.Host] {
		if stored.expired(now) {
			continue
		}
		if stored.Secure && u.Scheme != "https" {
			continue
		}
		result = append(result, stored.toCookie())
	}
	return result
}

// Clear wipes every stored cookie. Called on logout so a dead session is
// never replayed on the next run, even when the server call failed.
func (j *Jar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.hosts = map[string][]cookieSchema{}

	err := os.Remove(j.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (j *Jar) load() error {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	var file schemaFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode session file: %w", err)
	}

	now := j.clock.Now()
	for _, host := range file.Hosts {
		var kept []cookieSchema
		for _, c := range host.Cookies {
			if !c.expired(now) {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			j.hosts[host.Name] = kept
		}
	}
	return nil
}

func (j *Jar) persistLocked() error {
	file := schemaFile{}
	for name, cookies := range j.hosts {
		file.Hosts = append(file.Hosts, hostSchema{Name: name, Cookies: cookies})
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(j.path), jarDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	if err := os.WriteFile(j.path, data, jarFileMode); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
