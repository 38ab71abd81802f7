package argh

import "reflect"

// guess fills in omitted type/action metadata from contextual clues, e.g.
// default=3 implies an integer type. It never overrides an explicitly
// supplied type or action.
func guess(spec ArgSpec) ArgSpec {
	out := spec

	if spec.HasDefault && spec.Default != nil {
		if b, ok := spec.Default.(bool); ok {
			if spec.Action == "" {
				// Boolean defaults toggle: a true default is
				// switched off by the flag, a false one on.
				if b {
					out.Action = ActionStoreFalse
				} else {
					out.Action = ActionStoreTrue
				}
			}
		} else if spec.Type == nil && spec.Action.typeAware() {
			t := reflect.TypeOf(spec.Default)
			if t.Kind() == reflect.Slice {
				// a slice default types the appended elements
				if spec.Action == ActionAppend {
					out.Type = t.Elem()
				}
			} else {
				out.Type = t
			}
		}
	}

	if len(spec.Choices) > 0 && spec.Type == nil && out.Type == nil {
		out.Type = reflect.TypeOf(spec.Choices[0])
	}
	return out
}
