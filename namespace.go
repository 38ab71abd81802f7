package argh

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/pkg/errors"
)

// Namespace holds the values produced by a successful parse, keyed by
// destination key. Command functions normally receive the values bound into
// their options struct; a function taking a *Namespace receives the raw
// results instead.
type Namespace struct {
	values map[string]any
}

func newNamespace() *Namespace {
	return &Namespace{values: make(map[string]any)}
}

func (n *Namespace) set(dest string, v any) {
	n.values[dest] = v
}

// Get returns the value stored under the destination key.
func (n *Namespace) Get(dest string) (any, bool) {
	v, ok := n.values[dest]
	return v, ok
}

// String returns the value under dest rendered as a string, or "" when
// absent.
func (n *Namespace) String(dest string) string {
	v, ok := n.values[dest]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the value under dest as an int, or 0 when absent or not an
// integer.
func (n *Namespace) Int(dest string) int {
	switch v := n.values[dest].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

// Bool returns the value under dest as a bool, or false when absent.
func (n *Namespace) Bool(dest string) bool {
	b, _ := n.values[dest].(bool)
	return b
}

// Strings returns the value under dest as a string slice, rendering
// non-string elements with fmt.Sprint.
func (n *Namespace) Strings(dest string) []string {
	switch v := n.values[dest].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return nil
	}
}

// Keys returns the destination keys present, sorted.
func (n *Namespace) Keys() []string {
	keys := make([]string, 0, len(n.values))
	for k := range n.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// bindOptions copies parsed values from the namespace into a fresh options
// struct. Values under keys that match no parameter are gathered into the
// variadic-keyword collector, when the struct declares one.
func bindOptions(facts SignatureFacts, optr reflect.Value, ns *Namespace) error {
	elem := optr.Elem()
	bound := make(map[string]bool)

	for _, p := range facts.Params {
		bound[p.Name] = true
		v, ok := ns.Get(p.Name)
		if !ok {
			continue
		}
		field := elem.FieldByIndex(p.FieldIndex)
		if err := assignValue(field, v); err != nil {
			return errors.Wrapf(err, "binding %s", p.Name)
		}
	}

	if facts.Trailing != "" {
		bound[facts.Trailing] = true
		if v, ok := ns.Get(facts.Trailing); ok {
			field := elem.FieldByIndex(facts.TrailingIndex)
			if err := assignValue(field, v); err != nil {
				return errors.Wrapf(err, "binding %s", facts.Trailing)
			}
		}
	}

	if facts.Extra != "" {
		field := elem.FieldByIndex(facts.ExtraIndex)
		for _, key := range ns.Keys() {
			if bound[key] {
				continue
			}
			if field.IsNil() {
				field.Set(reflect.MakeMap(field.Type()))
			}
			v, _ := ns.Get(key)
			ev := reflect.New(field.Type().Elem()).Elem()
			if err := assignValue(ev, v); err != nil {
				return errors.Wrapf(err, "binding extra %s", key)
			}
			field.SetMapIndex(reflect.ValueOf(key), ev)
		}
	}
	return nil
}

// assignValue stores a parsed value into a struct field, converting string
// tokens and numeric widths as needed.
func assignValue(field reflect.Value, v any) error {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	ft := field.Type()

	if rv.Type().AssignableTo(ft) {
		field.Set(rv)
		return nil
	}

	switch {
	case rv.Kind() == reflect.String && ft.Kind() != reflect.String:
		parsed, err := parseLiteral(rv.String(), ft)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(parsed))
		return nil
	case ft.Kind() == reflect.String:
		field.SetString(fmt.Sprint(v))
		return nil
	case ft.Kind() == reflect.Slice && (rv.Kind() == reflect.Slice):
		out := reflect.MakeSlice(ft, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev := reflect.New(ft.Elem()).Elem()
			if err := assignValue(ev, rv.Index(i).Interface()); err != nil {
				return err
			}
			out = reflect.Append(out, ev)
		}
		field.Set(out)
		return nil
	case rv.Type().ConvertibleTo(ft):
		field.Set(rv.Convert(ft))
		return nil
	}
	return errors.Errorf("cannot assign %T to %s", v, ft)
}
