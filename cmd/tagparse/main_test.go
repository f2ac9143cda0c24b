package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--color", "off", "--width", "80"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestTreeFromStdin(t *testing.T) {
	code, out, errOut := runCLI(t, `<ul><li class="x">one</li><li>two</li></ul>`)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "ul\n  li class=\"x\"\n    one\n  li\n    two\n", out)
}

func TestTreeShowsKinds(t *testing.T) {
	code, out, _ := runCLI(t, `<div><br><script>a<b</script></div>`)
	require.Equal(t, 0, code)
	require.Equal(t, "div\n  br [void]\n  script [raw]\n    a<b\n", out)
}

func TestTreeWrapsContent(t *testing.T) {
	code, out, _ := runCLI(t, `<p>alpha beta gamma delta epsilon zeta</p>`, "--width", "30")
	require.Equal(t, 0, code)
	require.Equal(t, "p\n  alpha beta gamma delta\n  epsilon zeta\n", out)
}

func TestChildContentQuery(t *testing.T) {
	code, out, _ := runCLI(t, `<div><div class="id2"><span>hit</span></div></div>`, "-q", ".id2", "-c")
	require.Equal(t, 0, code)
	require.Equal(t, "hit\n", out)
}

func TestContentQuery(t *testing.T) {
	code, out, _ := runCLI(t, `<ul><li>one</li><li>two</li></ul>`, "--query", "ul > li", "--content")
	require.Equal(t, 0, code)
	require.Equal(t, "one\ntwo\n", out)
}

func TestInvalidQuery(t *testing.T) {
	code, _, errOut := runCLI(t, `<p>x</p>`, "-q", "p,,")
	require.Equal(t, 2, code)
	require.Contains(t, errOut, "invalid query")
}

func TestUnparsableInput(t *testing.T) {
	code, out, errOut := runCLI(t, `<a>text</b>`)
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.Contains(t, errOut, "stdin: no element could be parsed")
}

func TestFileInputs(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.html")
	second := filepath.Join(dir, "second.html")
	require.NoError(t, os.WriteFile(first, []byte("\n\n<title>One</title>"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte(`<title>Two</title>`), 0o600))

	code, out, errOut := runCLI(t, "", "-q", "title", "--content", first, "file://"+second)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "One\nTwo\n", out)
}

func TestMissingFile(t *testing.T) {
	code, _, errOut := runCLI(t, "", filepath.Join(t.TempDir(), "absent.html"))
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "absent.html")
}

func TestCharsetFlag(t *testing.T) {
	latin1 := string([]byte{'<', 'p', '>', 0xe9, '<', '/', 'p', '>'})
	code, out, _ := runCLI(t, latin1, "--charset", "latin1", "-q", "p", "--content")
	require.Equal(t, 0, code)
	require.Equal(t, "é\n", out)
}

func TestParserFlags(t *testing.T) {
	code, out, _ := runCLI(t, `<p>a<br>b</p>`, "--keep-void-text", "-q", "p", "--content")
	require.Equal(t, 0, code)
	require.Equal(t, "ab\n", out)

	code, out, _ = runCLI(t, `<title>x<y</title>`, "--escapable-raw", "-q", "title", "--content")
	require.Equal(t, 0, code)
	require.Equal(t, "x<y\n", out)

	code, _, _ = runCLI(t, `<a><b></b></a>`, "--max-depth", "0")
	require.Equal(t, 0, code)
	code, _, _ = runCLI(t, `<a><b><c></c></b></a>`, "--max-depth", "1")
	require.Equal(t, 1, code)
}

func TestURLInputWithCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		}
		session := "anonymous"
		if c, err := r.Cookie("session"); err == nil {
			session = c.Value
		}
		fmt.Fprintf(w, `<p>%s</p>`, session)
	}))
	defer server.Close()

	jar := filepath.Join(t.TempDir(), "cookies.json")

	code, out, errOut := runCLI(t, "", "--cookies", jar, "-q", "p", "--content", server.URL+"/login")
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "anonymous\n", out)

	code, out, errOut = runCLI(t, "", "--cookies", jar, "-q", "p", "--content", server.URL+"/page")
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "abc\n", out)
}

func TestUsageErrors(t *testing.T) {
	code, _, _ := runCLI(t, "", "--no-such-flag")
	require.Equal(t, 2, code)

	code, _, errOut := runCLI(t, "", "--color", "sometimes")
	require.Equal(t, 2, code)
	require.Contains(t, errOut, "expected auto|on|off")
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "", "--version")
	require.Equal(t, 0, code)
	require.NotEmpty(t, out)
}
