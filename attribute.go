package tagparse

// parseAttributes reads name="value" pairs until one is incomplete. The
// incomplete attempt is rolled back, so zero attributes is a valid result.
func (c *Cursor) parseAttributes() []Attribute {
	var attributes []Attribute

	for {
		var attr Attribute

		ok := c.attempt(func() bool {
			c.SkipWhitespace()

			name, ok := c.CaptureWhile(IsAttrNameChar)

			if !ok || !c.MatchChar('=') {
				return false
			}

			value, ok := c.CaptureQuotedString()

			if !ok {
				return false
			}

			attr = Attribute{Name: name, Value: value}

			return true
		})

		if !ok {
			return attributes
		}

		attributes = append(attributes, attr)
	}
}
