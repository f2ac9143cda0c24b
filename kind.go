package tagparse

// Kind is the content model of an element, decided by its name alone.
type Kind int

const (
	Normal Kind = iota
	// Void elements have no content and no closing tag.
	Void
	// Raw elements keep their body verbatim up to the closing tag.
	Raw
	// EscapableRaw elements are recognized but parsed like Normal ones
	// unless WithEscapableRawAsRaw is set.
	EscapableRaw
)

var kindNames = [...]string{
	Normal:       "normal",
	Void:         "void",
	Raw:          "raw",
	EscapableRaw: "escapable-raw",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {},
	"embed": {}, "hr": {}, "img": {}, "input": {},
	"keygen": {}, "link": {}, "meta": {}, "param": {},
	"source": {}, "track": {}, "wbr": {},
}

var rawTags = map[string]struct{}{
	"script": {}, "style": {},
}

var escapableRawTags = map[string]struct{}{
	"textarea": {}, "title": {},
}

// Classify maps a tag name to its Kind. Names are matched exactly.
func Classify(name string) Kind {
	if _, ok := voidTags[name]; ok {
		return Void
	}

	if _, ok := rawTags[name]; ok {
		return Raw
	}

	if _, ok := escapableRawTags[name]; ok {
		return EscapableRaw
	}

	return Normal
}
