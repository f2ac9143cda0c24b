package tagparse

import "bytes"

func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func IsAttrNameChar(b byte) bool {
	return !IsSpace(b) &&
		b != '"' &&
		b != '\'' &&
		b != '>' &&
		b != '/' &&
		b != '='
}

func IsTagNameChar(b byte) bool {
	return ('0' <= b && b <= '9') || ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

// MatchChar consumes one byte if it equals c.
func (c *Cursor) MatchChar(want byte) bool {
	b, ok := c.peek()

	if !ok || b != want {
		return false
	}

	c.advance()

	return true
}

// CaptureWhile consumes the longest run of bytes satisfying pred. An empty
// run is a failure.
func (c *Cursor) CaptureWhile(pred func(byte) bool) (string, bool) {
	var run []byte

	for {
		b, ok := c.peek()

		if !ok || !pred(b) {
			break
		}

		run = append(run, b)
		c.advance()
	}

	return string(run), len(run) > 0
}

// CaptureUntil consumes bytes up to, not including, the first byte
// satisfying stop. It fails on an empty run and when the stream ends before
// a stop byte is seen.
func (c *Cursor) CaptureUntil(stop func(byte) bool) (string, bool) {
	s, terminated := c.scanUntil(stop)

	return s, terminated && len(s) > 0
}

func (c *Cursor) scanUntil(stop func(byte) bool) (string, bool) {
	mark := c.Mark()
	var run []byte

	for {
		b, ok := c.peek()

		if !ok {
			c.Reset(mark)
			return "", false
		}

		if stop(b) {
			return string(run), true
		}

		run = append(run, b)
		c.advance()
	}
}

func (c *Cursor) captureUntilChar(stop byte) (string, bool) {
	return c.CaptureUntil(func(b byte) bool { return b == stop })
}

// CaptureUntilLiteral scans forward for lit and returns the text before it,
// leaving the cursor on the first byte of lit. The text may be empty. When
// the stream ends without a match the cursor is restored and it fails.
func (c *Cursor) CaptureUntilLiteral(lit string) (string, bool) {
	if lit == "" {
		return "", true
	}

	mark := c.Mark()
	var text bytes.Buffer

	for {
		b, ok := c.peek()

		if !ok {
			c.Reset(mark)
			return "", false
		}

		if b == lit[0] && c.hasPrefix(lit) {
			return text.String(), true
		}

		text.WriteByte(b)
		c.advance()
	}
}

// hasPrefix reports whether the stream continues with lit at the current
// position. The cursor does not move.
func (c *Cursor) hasPrefix(lit string) bool {
	mark := c.Mark()
	defer c.Reset(mark)

	for i := 0; i < len(lit); i++ {
		if !c.MatchChar(lit[i]) {
			return false
		}
	}

	return true
}

// CaptureQuotedString matches a double-quoted string and returns its body,
// which may be empty.
func (c *Cursor) CaptureQuotedString() (string, bool) {
	var value string

	ok := c.attempt(func() bool {
		if !c.MatchChar('"') {
			return false
		}

		s, terminated := c.scanUntil(func(b byte) bool { return b == '"' })

		if !terminated {
			return false
		}

		value = s

		return c.MatchChar('"')
	})

	return value, ok
}

func (c *Cursor) MatchWhitespaceRun() bool {
	_, ok := c.CaptureWhile(IsSpace)
	return ok
}

func (c *Cursor) SkipWhitespace() {
	for c.MatchWhitespaceRun() {
	}
}
