package main

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/pkl-community/pklcore/internal/modcache"
	"github.com/pkl-community/pklcore/internal/object"
	"github.com/pkl-community/pklcore/pkg/ast"
	"github.com/pkl-community/pklcore/pkg/pklvalue"
)

// literalInitializer builds a modcache.Initializer that treats source as a
// JSON object of property name -> literal value, rather than parsing Pkl
// source text (no Pkl parser is in scope here; see DESIGN.md). Each
// property is installed as a constant-folded member via ast.Const, so the
// resulting module forces and exports exactly like one produced by a real
// evaluation pipeline.
func literalInitializer() modcache.Initializer {
	return func(module *object.Typed, source, resolvedURI string) (string, error) {
		if source == "" {
			return "", nil
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(source), &fields); err != nil {
			return "", fmt.Errorf("pklrun: %s: %w", resolvedURI, err)
		}
		for name, raw := range fields {
			v, err := toValue(raw)
			if err != nil {
				return "", fmt.Errorf("pklrun: %s: property %q: %w", resolvedURI, name, err)
			}
			module.AddProperty(name, 0, ast.Const(v), nil)
		}
		return "", nil
	}
}

func toValue(raw any) (pklvalue.Value, error) {
	switch x := raw.(type) {
	case nil:
		return pklvalue.Null{}, nil
	case bool:
		return pklvalue.Bool(x), nil
	case string:
		return pklvalue.String(x), nil
	case float64:
		if x == float64(int64(x)) {
			return pklvalue.Int(int64(x)), nil
		}
		return pklvalue.Float(x), nil
	case []any:
		elems := make([]pklvalue.Value, len(x))
		for i, e := range x {
			v, err := toValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return pklvalue.NewList(elems...), nil
	case map[string]any:
		m := pklvalue.NewMap()
		for k, e := range x {
			v, err := toValue(e)
			if err != nil {
				return nil, err
			}
			m = m.Put(pklvalue.String(k), v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported literal type %T", raw)
	}
}
