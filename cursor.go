package tagparse

import (
	"errors"
	"io"
)

const defaultWindow = 4096

// Position is an absolute byte offset into the underlying stream.
type Position int64

// Cursor reads bytes from a seekable stream and supports marking and
// resetting the read position. Every matcher backtracks through it.
type Cursor struct {
	r      io.ReadSeeker
	window []byte
	base   int64
	pos    int64
	eof    int64
	err    error
}

func NewCursor(r io.ReadSeeker) *Cursor {
	return newCursorSize(r, defaultWindow)
}

func newCursorSize(r io.ReadSeeker, size int) *Cursor {
	c := &Cursor{
		r:      r,
		window: make([]byte, 0, size),
		eof:    -1,
	}

	start, err := r.Seek(0, io.SeekCurrent)

	if err != nil {
		c.err = err
		return c
	}

	c.base = start
	c.pos = start

	return c
}

func (c *Cursor) Mark() Position {
	return Position(c.pos)
}

func (c *Cursor) Reset(p Position) {
	c.pos = int64(p)
}

func (c *Cursor) Pos() Position {
	return Position(c.pos)
}

// Err returns the first read or seek error seen. After an error the cursor
// behaves as if the stream ended.
func (c *Cursor) Err() error {
	return c.err
}

// attempt runs parse and resets the cursor to where it was if parse fails.
func (c *Cursor) attempt(parse func() bool) bool {
	mark := c.Mark()

	if parse() {
		return true
	}

	c.Reset(mark)

	return false
}

func (c *Cursor) peek() (byte, bool) {
	if c.pos >= c.base && c.pos < c.base+int64(len(c.window)) {
		return c.window[c.pos-c.base], true
	}

	if !c.fill() {
		return 0, false
	}

	return c.window[c.pos-c.base], true
}

func (c *Cursor) advance() {
	c.pos++
}

func (c *Cursor) next() (byte, bool) {
	b, ok := c.peek()

	if ok {
		c.advance()
	}

	return b, ok
}

func (c *Cursor) fill() bool {
	if c.err != nil || (c.eof != -1 && c.pos >= c.eof) {
		return false
	}

	if _, err := c.r.Seek(c.pos, io.SeekStart); err != nil {
		c.err = err
		return false
	}

	c.window = c.window[:cap(c.window)]
	n, err := io.ReadFull(c.r, c.window)
	c.window = c.window[:n]
	c.base = c.pos

	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			c.err = err
			return false
		}

		c.eof = c.pos + int64(n)
	}

	return n > 0
}
