package tagparse

import "fmt"

type combinator int

const (
	descendant combinator = iota
	child
)

type step struct {
	combinator combinator
	qualifiers []string
}

// Query selects tags with a small CSS-like syntax: tag names, ".class",
// "#id" and "*" qualifiers, combined with " " (descendant) and ">" (child).
type Query struct {
	query  string
	scope  []*Tag
	scoped bool
	parser *Parser
	err    error
}

func (p *Parser) Query(query string) *Query {
	return &Query{query: query, parser: p}
}

// Query narrows q: the new query matches descendants of q's results.
func (q *Query) Query(query string) *Query {
	scope := q.execute()

	return &Query{
		query:  query,
		scope:  scope,
		scoped: true,
		parser: q.parser,
		err:    q.err,
	}
}

type QueryTag struct {
	*Tag
	parser *Parser
}

func (qt *QueryTag) InnerText() string {
	return qt.Tag.Content
}

// ChildContent returns the content of the first child, or "" when there is
// none.
func (qt *QueryTag) ChildContent() string {
	if c := qt.Tag.FirstChild(); c != nil {
		return c.Content
	}

	return ""
}

func (qt *QueryTag) Query(query string) *Query {
	return &Query{
		query:  query,
		scope:  []*Tag{qt.Tag},
		scoped: true,
		parser: qt.parser,
	}
}

func (q *Query) Err() error {
	return q.err
}

func (q *Query) Get() []*QueryTag {
	tags := q.execute()
	result := make([]*QueryTag, len(tags))

	for i, t := range tags {
		result[i] = &QueryTag{t, q.parser}
	}

	return result
}

func (q *Query) First() *QueryTag {
	tags := q.Get()

	if len(tags) == 0 {
		return nil
	}

	return tags[0]
}

func (q *Query) Last() *QueryTag {
	tags := q.Get()

	if len(tags) == 0 {
		return nil
	}

	return tags[len(tags)-1]
}

func (q *Query) execute() []*Tag {
	if q.err != nil || q.parser == nil {
		return nil
	}

	steps, err := parseQuery(q.query)

	if err != nil {
		q.err = err
		return nil
	}

	var tags []*Tag

	for i, s := range steps {
		switch {
		case i == 0 && !q.scoped:
			tags = q.fromDocument(s)
		case i == 0:
			tags = apply(q.scope, s)
		default:
			tags = apply(tags, s)
		}

		if len(tags) == 0 {
			return nil
		}
	}

	return tags
}

func (q *Query) fromDocument(s step) []*Tag {
	if s.combinator == child {
		return filter(q.parser.Roots(), s.qualifiers)
	}

	return filter(q.parser.GetTags(indexKey(s.qualifiers)), s.qualifiers)
}

// indexKey picks the qualifier to look up in the parser's tag index.
func indexKey(qualifiers []string) string {
	for _, q := range qualifiers {
		if q[0] == '#' {
			return q
		}
	}

	return qualifiers[0]
}

func apply(tags []*Tag, s step) []*Tag {
	var matched []*Tag
	seen := make(map[*Tag]struct{})

	add := func(t *Tag) {
		if _, ok := seen[t]; ok {
			return
		}

		seen[t] = struct{}{}
		matched = append(matched, t)
	}

	for _, t := range tags {
		if s.combinator == child {
			for _, c := range filter(t.Children, s.qualifiers) {
				add(c)
			}

			continue
		}

		var deep []*Tag
		filterDeep(t.Children, s.qualifiers, &deep)

		for _, c := range deep {
			add(c)
		}
	}

	return matched
}

func filter(tags []*Tag, qualifiers []string) []*Tag {
	var matched []*Tag

	for _, t := range tags {
		if matchQualifiers(qualifiers, t) {
			matched = append(matched, t)
		}
	}

	return matched
}

func filterDeep(tags []*Tag, qualifiers []string, container *[]*Tag) {
	for _, t := range tags {
		if matchQualifiers(qualifiers, t) {
			*container = append(*container, t)
		}

		filterDeep(t.Children, qualifiers, container)
	}
}

func matchQualifiers(qualifiers []string, t *Tag) bool {
	for _, qualifier := range qualifiers {
		switch qualifier[0] {
		case '*':
		case '.':
			if !t.HasClass(qualifier[1:]) {
				return false
			}
		case '#':
			if id, _ := t.Attr("id"); id != qualifier[1:] {
				return false
			}
		default:
			if t.Name != qualifier {
				return false
			}
		}
	}

	return true
}

func isValidQualifierChar(c byte) bool {
	return ('0' <= c && c <= '9') ||
		('A' <= c && c <= 'Z') ||
		('a' <= c && c <= 'z') ||
		c == '-' || c == '_'
}

func parseQuery(query string) ([]step, error) {
	var steps []step

	length := len(query)
	next := descendant
	explicit := false

	for i := 0; i < length; {
		switch c := query[i]; {
		case IsSpace(c):
			i++
		case c == '>':
			if explicit {
				return nil, fmt.Errorf("invalid query %q: unexpected '>' at %d", query, i)
			}

			next = child
			explicit = true
			i++
		default:
			qualifiers, end := parseQualifiers(query, i)

			if len(qualifiers) == 0 {
				return nil, fmt.Errorf("invalid query %q: unexpected %q at %d", query, c, i)
			}

			steps = append(steps, step{combinator: next, qualifiers: qualifiers})
			next = descendant
			explicit = false
			i = end
		}
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("invalid query %q: no selector", query)
	}

	if explicit {
		return nil, fmt.Errorf("invalid query %q: trailing '>'", query)
	}

	return steps, nil
}

// parseQualifiers reads one compound selector starting at i and returns its
// qualifiers and the index after it.
func parseQualifiers(query string, i int) ([]string, int) {
	var qualifiers []string

	length := len(query)

	for i < length {
		start := i

		switch query[i] {
		case '*':
			qualifiers = append(qualifiers, "*")
			i++
			continue
		case '.', '#':
			i++
		}

		for i < length && isValidQualifierChar(query[i]) {
			i++
		}

		if i == start {
			break
		}

		if i == start+1 && !isValidQualifierChar(query[start]) {
			return nil, start
		}

		qualifiers = append(qualifiers, query[start:i])
	}

	return qualifiers, i
}
