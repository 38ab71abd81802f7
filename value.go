package argh

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// argValue adapts an ArgSpec to the pflag.Value interface. It performs the
// typed conversion, choices validation and action handling for one
// flag-style argument, and keeps the parsed result until the namespace is
// assembled.
type argValue struct {
	spec  *ArgSpec
	set   bool
	count int
	value any
	list  []any
}

func newArgValue(spec *ArgSpec) *argValue {
	return &argValue{spec: spec}
}

func (v *argValue) Set(s string) error {
	switch v.spec.Action {
	case ActionStoreTrue:
		v.value = true
	case ActionStoreFalse:
		v.value = false
	case ActionCount:
		if s == "" || s == "+1" {
			v.count++
		} else {
			n, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			v.count = n
		}
	case ActionAppend:
		parsed, err := v.convert(s)
		if err != nil {
			return err
		}
		v.list = append(v.list, parsed)
	default:
		parsed, err := v.convert(s)
		if err != nil {
			return err
		}
		v.value = parsed
	}
	v.set = true
	return nil
}

func (v *argValue) convert(s string) (any, error) {
	var parsed any = s
	if v.spec.Type != nil {
		p, err := parseLiteral(s, v.spec.Type)
		if err != nil {
			return nil, err
		}
		parsed = p
	}
	if len(v.spec.Choices) > 0 && !containsChoice(v.spec.Choices, parsed) {
		return nil, errors.Errorf("invalid choice %q (choose from %s)", s, renderChoices(v.spec.Choices))
	}
	return parsed, nil
}

func (v *argValue) String() string {
	switch {
	case v.spec.Action == ActionCount:
		return strconv.Itoa(v.count)
	case v.spec.Action == ActionAppend:
		return fmt.Sprint(v.list)
	case v.value != nil:
		return fmt.Sprint(v.value)
	case v.spec.HasDefault && v.spec.Default != nil:
		return fmt.Sprint(v.spec.Default)
	}
	return ""
}

// Type names the value for pflag's usage rendering; "bool" suppresses the
// value placeholder for toggles.
func (v *argValue) Type() string {
	switch v.spec.Action {
	case ActionStoreTrue, ActionStoreFalse:
		return "bool"
	case ActionCount:
		return "count"
	}
	name := "string"
	if v.spec.Type != nil {
		switch v.spec.Type.Kind() {
		case reflect.Bool:
			name = "bool"
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			name = "int"
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			name = "uint"
		case reflect.Float32, reflect.Float64:
			name = "float"
		}
		if v.spec.Type == durationType {
			name = "duration"
		}
	}
	if v.spec.Action == ActionAppend {
		name += "s"
	}
	return name
}

// result returns the parsed value for the namespace, falling back to the
// spec's default. The second return reports whether anything should be
// stored at all.
func (v *argValue) result() (any, bool) {
	switch v.spec.Action {
	case ActionCount:
		if v.set {
			return v.count, true
		}
	case ActionAppend:
		if v.set {
			return v.list, true
		}
	default:
		if v.set {
			return v.value, true
		}
	}
	if v.spec.HasDefault {
		return v.spec.Default, true
	}
	return nil, false
}

func containsChoice(choices []any, v any) bool {
	for _, c := range choices {
		if reflect.DeepEqual(c, v) {
			return true
		}
	}
	return false
}

func renderChoices(choices []any) string {
	parts := make([]string, 0, len(choices))
	for _, c := range choices {
		parts = append(parts, fmt.Sprint(c))
	}
	return strings.Join(parts, ", ")
}
