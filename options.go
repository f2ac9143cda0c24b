package tagparse

import "go.uber.org/zap"

type Option func(*Parser)

// WithLogger traces every opened element at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxDepth makes any element nested deeper than depth fail to parse.
// The root level is depth 0. Zero disables the limit.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithEscapableRawAsRaw parses textarea and title bodies verbatim, the way
// script and style are parsed. By default they are parsed as markup.
func WithEscapableRawAsRaw(enabled bool) Option {
	return func(p *Parser) {
		p.escapableRaw = enabled
	}
}

// WithVoidTextKept appends the text following a void element to the
// enclosing element's content instead of dropping it.
func WithVoidTextKept(enabled bool) Option {
	return func(p *Parser) {
		p.keepVoidText = enabled
	}
}
