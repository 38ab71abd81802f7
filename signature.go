package argh

import (
	"context"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
)

// Param holds the facts known about one parameter of a command function.
type Param struct {
	// Name is the parameter's normalized (snake_case) name.
	Name string

	// Default is the parameter's default value, if HasDefault is set.
	// A parameter with a default becomes a flag-style argument.
	Default    any
	HasDefault bool

	// KeywordOnly marks a parameter that must be given as a flag even
	// though it has no default; its value is then required.
	KeywordOnly bool

	// Help and Choices carry optional metadata attached to the
	// parameter at its declaration site.
	Help    string
	Choices []any

	// FieldIndex locates the struct field backing the parameter, for
	// binding parsed values back into a fresh options struct.
	FieldIndex []int
}

// SignatureFacts is a read-only description of a command function's
// signature. It is produced once per function by a FactsExtractor so that
// the reconciliation algorithm stays independent of how the facts were
// obtained.
type SignatureFacts struct {
	// Params lists the function's parameters in declaration order.
	Params []Param

	// Trailing names a variadic-positional collector absorbing any
	// number of extra positional values, or is empty.
	Trailing      string
	TrailingIndex []int

	// Extra names a variadic-keyword collector (a map field) absorbing
	// declared arguments that match no parameter, or is empty.
	Extra      string
	ExtraIndex []int

	// NamespaceOnly marks a function that expects a single pre-built
	// Namespace instead of an options struct; no inference is performed
	// for it.
	NamespaceOnly bool

	// TakesContext reports whether the function's first parameter is a
	// context.Context.
	TakesContext bool

	// Options is the type of the function's options struct, or nil.
	Options reflect.Type
}

// FactsExtractor produces SignatureFacts for a command function. The default
// extractor inspects the function's options struct via reflection; an
// alternative strategy may be supplied with WithExtractor.
type FactsExtractor interface {
	Extract(fn any) (SignatureFacts, error)
}

var (
	ctxType       = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType       = reflect.TypeOf((*error)(nil)).Elem()
	namespaceType = reflect.TypeOf((*Namespace)(nil))
	durationType  = reflect.TypeOf(time.Duration(0))
)

// StructFacts is the default FactsExtractor. It accepts functions of the
// shapes
//
//	func() error
//	func(ctx context.Context) error
//	func(opts *T) error
//	func(ctx context.Context, opts *T) error
//	func(ns *argh.Namespace) error
//	func(ctx context.Context, ns *argh.Namespace) error
//
// where T is a struct whose exported fields describe the command's
// parameters. Field names are normalized to snake_case; the `argh` struct
// tag overrides the name and may carry the options "flag", "trailing" and
// "extra". The `default`, `help` and `choices` tags fill in the matching
// parameter facts.
type StructFacts struct{}

func (StructFacts) Extract(fn any) (SignatureFacts, error) {
	var facts SignatureFacts

	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return facts, errors.Errorf("command must be a function, got %T", fn)
	}
	if t.NumOut() != 1 || !t.Out(0).Implements(errType) {
		return facts, errors.Errorf("command function must return exactly one error value")
	}
	if t.NumIn() > 2 {
		return facts, errors.Errorf("command function takes at most a context and an options struct")
	}

	in := make([]reflect.Type, 0, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		in = append(in, t.In(i))
	}
	if len(in) > 0 && in[0] == ctxType {
		facts.TakesContext = true
		in = in[1:]
	}
	if len(in) > 1 {
		return facts, errors.Errorf("command function takes at most one options struct")
	}
	if len(in) == 0 {
		return facts, nil
	}

	opts := in[0]
	if opts == namespaceType {
		facts.NamespaceOnly = true
		return facts, nil
	}
	if opts.Kind() != reflect.Ptr || opts.Elem().Kind() != reflect.Struct {
		return facts, errors.Errorf("options parameter must be a pointer to a struct, got %s", opts)
	}
	facts.Options = opts.Elem()

	if err := collectFields(&facts, facts.Options); err != nil {
		return facts, err
	}
	return facts, nil
}

func collectFields(facts *SignatureFacts, t reflect.Type) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			// unexported
			continue
		}
		tag := f.Tag.Get("argh")
		if tag == "-" {
			continue
		}
		name, tagOpts := parseTag(tag)
		if name == "" {
			name = snakeCase(f.Name)
		}

		switch {
		case tagOpts["trailing"]:
			if f.Type.Kind() != reflect.Slice {
				return errors.Errorf("trailing collector %s must be a slice, got %s", f.Name, f.Type)
			}
			if facts.Trailing != "" {
				return errors.Errorf("duplicate trailing collector %s", f.Name)
			}
			facts.Trailing = name
			facts.TrailingIndex = f.Index
			continue
		case tagOpts["extra"]:
			if f.Type.Kind() != reflect.Map || f.Type.Key().Kind() != reflect.String {
				return errors.Errorf("extra collector %s must be a map with string keys, got %s", f.Name, f.Type)
			}
			if facts.Extra != "" {
				return errors.Errorf("duplicate extra collector %s", f.Name)
			}
			facts.Extra = name
			facts.ExtraIndex = f.Index
			continue
		}

		p := Param{
			Name:        name,
			KeywordOnly: tagOpts["flag"],
			Help:        f.Tag.Get("help"),
			FieldIndex:  f.Index,
		}
		if raw, ok := f.Tag.Lookup("default"); ok {
			v, err := parseLiteral(raw, f.Type)
			if err != nil {
				return errors.Wrapf(err, "field %s: bad default %q", f.Name, raw)
			}
			p.Default = v
			p.HasDefault = true
		}
		if raw, ok := f.Tag.Lookup("choices"); ok {
			elem := f.Type
			if elem.Kind() == reflect.Slice {
				elem = elem.Elem()
			}
			for _, part := range strings.Split(raw, ",") {
				v, err := parseLiteral(strings.TrimSpace(part), elem)
				if err != nil {
					return errors.Wrapf(err, "field %s: bad choice %q", f.Name, part)
				}
				p.Choices = append(p.Choices, v)
			}
		}
		facts.Params = append(facts.Params, p)
	}
	return nil
}

func parseTag(tag string) (name string, opts map[string]bool) {
	opts = make(map[string]bool)
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, o := range parts[1:] {
		opts[strings.TrimSpace(o)] = true
	}
	return name, opts
}

// parseLiteral converts a tag literal into a value of the given type.
func parseLiteral(s string, t reflect.Type) (any, error) {
	if t == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return nil, err
		}
		v.SetFloat(f)
	default:
		return nil, errors.Errorf("unsupported literal type %s", t)
	}
	return v.Interface(), nil
}

// snakeCase converts a Go field name to its snake_case parameter name,
// keeping acronym runs intact (HTTPPort -> http_port).
func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// kebabCase is snakeCase with hyphens, the form used for command and flag
// names.
func kebabCase(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(snakeCase(s), "_", "-"), "--", "-")
}
