// Package tagparse parses a restricted HTML dialect into a tag tree using
// backtracking recursive descent over a seekable stream.
//
// Every matcher either succeeds and moves the cursor past what it consumed,
// or fails and leaves the cursor where it started. A document that does not
// match is not an error: the parser simply reports no roots.
//
// Known limitations, kept on purpose:
//   - VoidTextDropped: text following a void element up to the next '<' is
//     discarded rather than attached to the enclosing element. See
//     WithVoidTextKept.
//   - textarea and title are classified EscapableRaw but their bodies are
//     parsed as markup. See WithEscapableRawAsRaw.
package tagparse

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

const closeOpen = "</"

type Parser struct {
	cursor       *Cursor
	roots        []*Tag
	success      bool
	lastPos      Position
	tagMap       map[string][]*Tag
	logger       *zap.Logger
	maxDepth     int
	escapableRaw bool
	keepVoidText bool
}

// NewParser parses the document read from r. The returned error reports
// read or seek failures only; a document that does not parse yields a
// Parser whose Success is false.
func NewParser(r io.ReadSeeker, opts ...Option) (*Parser, error) {
	p := &Parser{
		cursor: NewCursor(r),
		tagMap: make(map[string][]*Tag),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.parse()

	if err := p.cursor.Err(); err != nil {
		return p, fmt.Errorf("read document: %w", err)
	}

	return p, nil
}

func ParseBytes(body []byte, opts ...Option) (*Parser, error) {
	return NewParser(bytes.NewReader(body), opts...)
}

func ParseString(body string, opts ...Option) (*Parser, error) {
	return NewParser(strings.NewReader(body), opts...)
}

func (p *Parser) parse() {
	p.cursor.SkipWhitespace()

	p.roots, _ = p.parseTag(0)
	p.success = len(p.roots) > 0
	p.lastPos = p.cursor.Pos()

	for _, root := range p.roots {
		root.Walk(func(t *Tag, _ int) bool {
			p.index(t)
			return true
		})
	}
}

// parseTag parses an element followed by as many siblings as match. It also
// returns the text void elements in the chain would have dropped.
func (p *Parser) parseTag(depth int) ([]*Tag, string) {
	var chain []*Tag
	var loose strings.Builder

	for {
		tag, dropped, ok := p.parseElement(depth)

		if !ok {
			return chain, loose.String()
		}

		chain = append(chain, tag)
		loose.WriteString(dropped)
	}
}

func (p *Parser) parseElement(depth int) (*Tag, string, bool) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		return nil, "", false
	}

	c := p.cursor
	var tag *Tag
	var dropped string

	ok := c.attempt(func() bool {
		c.SkipWhitespace()
		start := c.Mark()

		if !c.MatchChar('<') {
			return false
		}

		name, ok := c.CaptureWhile(IsTagNameChar)

		if !ok {
			return false
		}

		tag = &Tag{Name: name, Kind: Classify(name)}
		tag.Offset.Start = int64(start)
		tag.Attributes = c.parseAttributes()
		c.SkipWhitespace()

		if !c.MatchChar('>') {
			return false
		}

		p.logger.Debug("open",
			zap.String("tag", name),
			zap.Stringer("kind", tag.Kind),
			zap.Int("depth", depth),
			zap.Int64("offset", tag.Offset.Start),
		)

		switch p.contentKind(tag.Kind) {
		case Void:
			tag.Offset.End = int64(c.Pos())
			dropped, _ = c.captureUntilChar('<')

			return true
		case Raw:
			content, ok := c.CaptureUntilLiteral(closeOpen)

			if !ok {
				return false
			}

			tag.Content = content
		default:
			p.parseBody(tag, depth)
		}

		if !p.matchClose(name) {
			return false
		}

		tag.Offset.End = int64(c.Pos())

		return true
	})

	if !ok {
		return nil, "", false
	}

	return tag, dropped, true
}

// parseBody reads the leading text, the child chain and, when there were
// children, the text up to the closing tag.
func (p *Parser) parseBody(tag *Tag, depth int) {
	c := p.cursor
	var content strings.Builder

	leading, _ := c.captureUntilChar('<')
	content.WriteString(leading)

	children, loose := p.parseTag(depth + 1)

	if len(children) > 0 {
		if p.keepVoidText {
			content.WriteString(loose)
		}

		trailing, _ := c.CaptureUntilLiteral(closeOpen)
		content.WriteString(trailing)
	}

	tag.Content = content.String()
	tag.Children = children
}

func (p *Parser) matchClose(name string) bool {
	c := p.cursor

	if !c.MatchChar('<') || !c.MatchChar('/') {
		return false
	}

	word, ok := c.CaptureWhile(IsTagNameChar)

	if !ok || word != name {
		return false
	}

	return c.MatchChar('>')
}

func (p *Parser) contentKind(k Kind) Kind {
	if k == EscapableRaw {
		if p.escapableRaw {
			return Raw
		}

		return Normal
	}

	return k
}

func (p *Parser) index(t *Tag) {
	p.addTag("*", t)
	p.addTag(t.Name, t)

	for _, a := range t.Attributes {
		switch a.Name {
		case "class":
			p.addClasses(a.Value, t)
		case "id":
			p.addTag("#"+a.Value, t)
		}
	}
}

func (p *Parser) addTag(id string, item *Tag) {
	p.tagMap[id] = append(p.tagMap[id], item)
}

func (p *Parser) addClasses(attr string, t *Tag) {
	seen := make(map[string]struct{})

	for _, class := range strings.Fields(attr) {
		if _, ok := seen[class]; ok {
			continue
		}

		seen[class] = struct{}{}
		p.addTag("."+class, t)
	}
}

func (p *Parser) Success() bool {
	return p.success
}

// GetRoot returns the first top-level element, or nil.
func (p *Parser) GetRoot() *Tag {
	if len(p.roots) == 0 {
		return nil
	}

	return p.roots[0]
}

// Roots returns the top-level element and the siblings parsed after it.
func (p *Parser) Roots() []*Tag {
	return p.roots
}

// LastPosition is where the cursor stood when parsing finished. Input after
// it was not consumed.
func (p *Parser) LastPosition() Position {
	return p.lastPos
}

func (p *Parser) First(name string) *Tag {
	if tags := p.tagMap[name]; len(tags) > 0 {
		return tags[0]
	}

	return nil
}

func (p *Parser) Filter(name string) []*Tag {
	return append([]*Tag(nil), p.tagMap[name]...)
}

// GetTags looks tags up by name, ".class", "#id" or "*", in document order.
func (p *Parser) GetTags(key string) []*Tag {
	return p.tagMap[key]
}
