package tagparse

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeCharset(t *testing.T) {
	latin1 := []byte{'<', 'p', '>', 'c', 'a', 'f', 0xe9, '<', '/', 'p', '>'}

	decoded, err := DecodeCharset(latin1, "latin1")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	p, err := ParseBytes(decoded)
	if err != nil {
		t.Fatal(err)
	}

	if got := p.GetRoot().Content; got != "café" {
		t.Fatalf("expected café, got %q", got)
	}
}

func TestDecodeCharsetPassThrough(t *testing.T) {
	data := []byte("<p>ü</p>")

	for _, label := range []string{"", "utf-8", " UTF8 "} {
		got, err := DecodeCharset(data, label)
		if err != nil {
			t.Fatalf("%q: %v", label, err)
		}

		if !bytes.Equal(got, data) {
			t.Fatalf("%q: expected data unchanged, got %q", label, got)
		}
	}
}

func TestDecodeCharsetUnknown(t *testing.T) {
	if _, err := DecodeCharset([]byte("x"), "klingon"); !errors.Is(err, ErrUnknownCharset) {
		t.Fatalf("expected ErrUnknownCharset, got %v", err)
	}
}
