package tagparse

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

var ErrUnknownCharset = errors.New("unknown charset")

// DecodeCharset converts data from the encoding named by label to UTF-8.
// Labels follow the WHATWG encoding names ("latin1", "shift_jis", ...).
func DecodeCharset(data []byte, label string) ([]byte, error) {
	label = strings.TrimSpace(label)

	if label == "" {
		return data, nil
	}

	enc, err := htmlindex.Get(label)

	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}

	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return data, nil
	}

	decoded, err := enc.NewDecoder().Bytes(data)

	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}

	return decoded, nil
}
