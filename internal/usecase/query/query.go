package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/brcstream/internal/domain"
)

// language is the full gval language with JSONPath placeholders, so filters
// such as $.stations[?(@.max > 25)].name can compare values.
var language = gval.Full(jsonpath.PlaceholderExtension())

// Select evaluates a JSONPath expression against a JSON document.
//
// Policy:
// - If doc is not JSON -> execution error.
// - An empty or invalid expression -> invalid config error.
// - A path that matches nothing -> not found error.
func Select(doc []byte, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("empty jsonpath expression: %w", domain.ErrInvalidConfig),
		}
	}

	parsed, err := parseJSON(doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("document is not valid JSON: %w", err),
		}
	}

	eval, err := language.NewEvaluable(expr)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("jsonpath %s: %w", expr, err),
		}
	}

	val, err := eval(context.Background(), parsed)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("jsonpath %s: %w", expr, err),
		}
	}

	if isEmptyValue(val) {
		return nil, &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("jsonpath %s: no value found: %w", expr, domain.ErrNotFound),
		}
	}

	return val, nil
}

// SelectValue marshals v and evaluates expr against the resulting document.
func SelectValue(v any, expr string) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "query.marshal",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	return Select(b, expr)
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
