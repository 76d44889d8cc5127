package layerfill

import (
	"fmt"
	"strings"
)

// Context binds one record's fields to the expression evaluator for the
// duration of that record's slot fills.
type Context struct {
	data          map[string]any
	evaluator     ExpressionEvaluator
	notationBegin string
	notationEnd   string
}

// NewContext creates a Context over the given data map.
func NewContext(data map[string]any, evaluator ExpressionEvaluator, begin, end string) *Context {
	if data == nil {
		data = make(map[string]any)
	}
	if evaluator == nil {
		evaluator = NewExpressionEvaluator()
	}
	if begin == "" || end == "" {
		begin, end = "${", "}"
	}
	return &Context{data: data, evaluator: evaluator, notationBegin: begin, notationEnd: end}
}

// Evaluate evaluates a bare expression (no delimiters) against the data.
func (c *Context) Evaluate(expression string) (any, error) {
	return c.evaluator.Evaluate(expression, c.data)
}

// Render evaluates a slot template, substituting every ${...} expression and
// keeping literal text as-is. A template without expressions renders to
// itself. Nil expression results render as empty.
func (c *Context) Render(template string) (string, error) {
	segments := ParseTemplate(template, c.notationBegin, c.notationEnd)
	if len(segments) == 0 {
		return template, nil
	}

	var b strings.Builder
	for _, seg := range segments {
		if !seg.IsExpression {
			b.WriteString(seg.Text)
			continue
		}
		val, err := c.Evaluate(seg.Text)
		if err != nil {
			return "", fmt.Errorf("render template %q: %w", template, err)
		}
		if val != nil {
			fmt.Fprintf(&b, "%v", val)
		}
	}
	return b.String(), nil
}
