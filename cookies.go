package tagparse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
)

// ExtJar is a cookie jar that remembers what it was given so the cookies
// can be written to disk and loaded again.
type ExtJar struct {
	jar     *cookiejar.Jar
	mu      sync.Mutex
	cookies map[string][]*http.Cookie
}

func NewJar() *ExtJar {
	// cookiejar.New only fails on a bad PublicSuffixList, and nil is valid.
	jar, _ := cookiejar.New(nil)

	return &ExtJar{jar: jar, cookies: make(map[string][]*http.Cookie)}
}

func (j *ExtJar) Save(filename string) error {
	j.mu.Lock()
	data, err := json.Marshal(j.cookies)
	j.mu.Unlock()

	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}

	return os.WriteFile(filename, data, 0600)
}

func (j *ExtJar) Load(filename string) error {
	data, err := os.ReadFile(filename)

	if err != nil {
		return err
	}

	var allCookies map[string][]*http.Cookie

	if err = json.Unmarshal(data, &allCookies); err != nil {
		return fmt.Errorf("decode cookies %s: %w", filename, err)
	}

	for urlString, cookies := range allCookies {
		u, err := url.Parse(urlString)

		if err != nil {
			return err
		}

		j.SetCookies(u, cookies)
	}

	return nil
}

func (j *ExtJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

func (j *ExtJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	j.cookies[u.String()] = cookies
	j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
}
