package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/muzzletov/tagparse"
)

const indentStep = 2

type printer struct {
	w     io.Writer
	width int
	name  func(a ...interface{}) string
	attr  func(a ...interface{}) string
	kind  func(a ...interface{}) string
}

func newPrinter(w io.Writer, width int) *printer {
	return &printer{
		w:     w,
		width: width,
		name:  color.New(color.FgCyan, color.Bold).SprintFunc(),
		attr:  color.New(color.FgYellow).SprintFunc(),
		kind:  color.New(color.FgMagenta).SprintFunc(),
	}
}

func (p *printer) tree(root *tagparse.Tag) {
	root.Walk(func(t *tagparse.Tag, depth int) bool {
		p.tag(t, depth*indentStep)
		return true
	})
}

func (p *printer) tag(t *tagparse.Tag, level int) {
	var b strings.Builder

	b.WriteString(p.name(t.Name))
	for _, a := range t.Attributes {
		fmt.Fprintf(&b, " %s=%q", p.attr(a.Name), a.Value)
	}
	if t.Kind != tagparse.Normal {
		fmt.Fprintf(&b, " %s", p.kind("["+t.Kind.String()+"]"))
	}

	fmt.Fprintln(p.w, indent.String(b.String(), uint(level)))

	if content := strings.TrimSpace(t.Content); content != "" {
		p.block(content, level+indentStep)
	}
}

func (p *printer) text(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) block(s string, level int) {
	limit := p.width - level
	if limit < 20 {
		limit = 20
	}
	fmt.Fprintln(p.w, indent.String(wordwrap.String(s, limit), uint(level)))
}
