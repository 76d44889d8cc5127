package layerfill

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExpressionEvaluator evaluates slot template expressions against a record's
// fields.
type ExpressionEvaluator interface {
	Evaluate(expression string, data map[string]any) (any, error)
}

// exprEvaluator implements ExpressionEvaluator using expr-lang/expr, caching
// compiled programs across records.
type exprEvaluator struct {
	cache sync.Map // expression string → compiled *vm.Program
}

// NewExpressionEvaluator returns an evaluator backed by expr-lang/expr.
func NewExpressionEvaluator() ExpressionEvaluator {
	return &exprEvaluator{}
}

func (e *exprEvaluator) Evaluate(expression string, data map[string]any) (any, error) {
	if expression == "" {
		return nil, nil
	}
	program, err := e.compile(expression, data)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expression, err)
	}
	result, err := expr.Run(program, data)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression %q: %w", expression, err)
	}
	return result, nil
}

func (e *exprEvaluator) compile(expression string, env map[string]any) (*vm.Program, error) {
	if cached, ok := e.cache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	e.cache.Store(expression, program)
	return program, nil
}

// Segment is a part of a slot template: either literal text or an expression
// stripped of its delimiters.
type Segment struct {
	IsExpression bool
	Text         string
}

// ParseTemplate splits a slot template into literal and expression segments.
// For example, `${Name}, ${Age}` → [{true,"Name"}, {false,", "}, {true,"Age"}].
func ParseTemplate(value, begin, end string) []Segment {
	if begin == "" || end == "" {
		begin, end = "${", "}"
	}

	var segments []Segment
	remaining := value

	for {
		startIdx := strings.Index(remaining, begin)
		if startIdx < 0 {
			break
		}

		searchFrom := startIdx + len(begin)
		endIdx := findMatchingEnd(remaining[searchFrom:], begin, end)
		if endIdx < 0 {
			break
		}
		endIdx += searchFrom

		if startIdx > 0 {
			segments = append(segments, Segment{Text: remaining[:startIdx]})
		}
		segments = append(segments, Segment{
			IsExpression: true,
			Text:         remaining[startIdx+len(begin) : endIdx],
		})
		remaining = remaining[endIdx+len(end):]
	}

	if remaining != "" {
		segments = append(segments, Segment{Text: remaining})
	}
	return segments
}

// findMatchingEnd locates the matching end delimiter, skipping over nested
// begin/end pairs.
func findMatchingEnd(s, begin, end string) int {
	depth := 0
	for i := 0; i <= len(s)-len(end); i++ {
		if strings.HasPrefix(s[i:], begin) {
			depth++
		} else if strings.HasPrefix(s[i:], end) {
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
