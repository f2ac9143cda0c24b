package tagparse

import "strings"

type Offset struct {
	Start int64
	End   int64
}

type Attribute struct {
	Name  string
	Value string
}

// Tag is one parsed element. Children holds the first child followed by its
// siblings, in source order.
type Tag struct {
	Name       string
	Kind       Kind
	Content    string
	Attributes []Attribute
	Children   []*Tag
	Offset     Offset
}

// Attr returns the value of the first attribute called name.
func (t *Tag) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

func (t *Tag) HasClass(class string) bool {
	for _, a := range t.Attributes {
		if a.Name != "class" {
			continue
		}

		for _, token := range strings.Fields(a.Value) {
			if token == class {
				return true
			}
		}
	}

	return false
}

func (t *Tag) FirstChild() *Tag {
	if len(t.Children) == 0 {
		return nil
	}

	return t.Children[0]
}

func (t *Tag) FindAll(name string) []*Tag {
	children := make([]*Tag, 0)

	for _, c := range t.Children {
		if c.Name == name {
			children = append(children, c)
		}

		children = append(children, c.FindAll(name)...)
	}

	return children
}

// Walk visits t and its descendants depth first, in document order. It
// stops descending into a tag when fn returns false.
func (t *Tag) Walk(fn func(tag *Tag, depth int) bool) {
	t.walk(fn, 0)
}

func (t *Tag) walk(fn func(*Tag, int) bool, depth int) {
	if !fn(t, depth) {
		return
	}

	for _, c := range t.Children {
		c.walk(fn, depth+1)
	}
}
