package tagparse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><p class="greeting">hi</p><p class="agent">%s</p></body></html>`, r.UserAgent())
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		fmt.Fprint(w, `<p>ok</p>`)
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		session := "anonymous"
		if c, err := r.Cookie("session"); err == nil {
			session = c.Value
		}
		fmt.Fprintf(w, `<p>%s</p>`, session)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestFetchParse(t *testing.T) {
	server := newTestServer(t)
	client := NewClient()
	client.SetUserAgent("tagparse-test")

	p, err := client.FetchParse(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	require.True(t, p.Success())
	require.Equal(t, "hi", p.Query(".greeting").First().InnerText())
	require.Equal(t, "tagparse-test", p.Query("p.agent").First().InnerText())
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	server := newTestServer(t)

	_, err := NewClient().Fetch(context.Background(), server.URL+"/missing")
	require.ErrorIs(t, err, ErrHTTPStatus)
}

func TestFetchSyncMergesHeaders(t *testing.T) {
	got := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("X-Trace")
		w.Header().Set("X-Reply", "yes")
		fmt.Fprint(w, `<p>x</p>`)
	}))
	defer server.Close()

	request := &Request{
		Url:           server.URL,
		RequestHeader: http.Header{"X-Trace": []string{"42"}},
	}

	require.NoError(t, NewClient().FetchSync(context.Background(), request))
	require.Equal(t, "42", <-got)
	require.Equal(t, "yes", request.ResponseHeader.Get("X-Reply"))
	require.Equal(t, "<p>x</p>", string(request.Data))
}

func TestCookiesPersist(t *testing.T) {
	server := newTestServer(t)
	jarFile := filepath.Join(t.TempDir(), "cookies.json")
	ctx := context.Background()

	first := NewClient()
	_, err := first.Fetch(ctx, server.URL+"/login")
	require.NoError(t, err)
	require.NoError(t, first.PersistCookies(jarFile))

	fresh, err := NewClient().FetchParse(ctx, server.URL+"/whoami")
	require.NoError(t, err)
	require.Equal(t, "anonymous", fresh.GetRoot().Content)

	second := NewClient()
	require.NoError(t, second.LoadCookies(jarFile))

	p, err := second.FetchParse(ctx, server.URL+"/whoami")
	require.NoError(t, err)
	require.Equal(t, "abc", p.GetRoot().Content)
}

func TestLoadCookiesErrors(t *testing.T) {
	jar := NewJar()
	require.Error(t, jar.Load(filepath.Join(t.TempDir(), "absent.json")))
}
