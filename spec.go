package argh

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Action determines how the underlying engine stores a parsed value.
// An empty Action is equivalent to ActionStore.
type Action string

const (
	// ActionStore keeps the last value given for the argument.
	ActionStore Action = "store"

	// ActionStoreTrue stores true when the flag is present.
	ActionStoreTrue Action = "store_true"

	// ActionStoreFalse stores false when the flag is present.
	ActionStoreFalse Action = "store_false"

	// ActionAppend collects every value given for the argument.
	ActionAppend Action = "append"

	// ActionCount stores the number of times the flag was given.
	ActionCount Action = "count"
)

// typeAware reports whether the action consumes a value that a type can be
// applied to. Boolean toggles and counters take no value.
func (a Action) typeAware() bool {
	return a == "" || a == ActionStore || a == ActionAppend
}

// Completer proposes completion candidates for an argument's value. It
// receives the partial word being completed and whatever has been parsed so
// far (which may be empty during shell completion).
type Completer func(prefix string, ns *Namespace) []string

// ArgSpec represents one command-line parameter before it is registered with
// the parsing engine. A spec either describes a single positional argument,
// or a flag-style argument with one or two option strings (short "-x", long
// "--xyz").
type ArgSpec struct {
	// Names holds the argument's option strings: a single bare name for a
	// positional argument, or dash-prefixed forms for a flag-style one.
	Names []string

	// Default is the value used when a flag-style argument is absent.
	// HasDefault distinguishes an explicit nil/zero default from no
	// default at all.
	Default    any
	HasDefault bool

	// Required marks a flag-style argument whose value is mandatory
	// despite being named (the keyword-only-without-default case).
	Required bool

	// Type converts the raw token into a typed value. Left nil, the
	// guessing step may fill it in from Default or Choices.
	Type reflect.Type

	// Action determines how parsed values are stored.
	Action Action

	// Choices restricts accepted values.
	Choices []any

	// Help is the help text shown for the argument.
	Help string

	// ZeroOrMore marks a positional collector absorbing any number of
	// trailing values.
	ZeroOrMore bool

	// Completer, if set, proposes shell-completion candidates for the
	// argument's value.
	Completer Completer

	// DeprecatedNames lists legacy option strings that are still
	// accepted; using one emits a deprecation notice and remaps to the
	// canonical destination.
	DeprecatedNames []string
}

// ArgOption refines an ArgSpec built with Arg.
type ArgOption func(*ArgSpec)

// Arg builds an explicit argument declaration. The name is a bare positional
// name or a dash-prefixed option string.
func Arg(name string, opts ...ArgOption) ArgSpec {
	s := ArgSpec{Names: []string{name}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Short prepends a short option string, keeping the conventional
// short-then-long order.
func Short(name string) ArgOption {
	return func(s *ArgSpec) { s.Names = append([]string{name}, s.Names...) }
}

// Help sets the argument's help text.
func Help(text string) ArgOption {
	return func(s *ArgSpec) { s.Help = text }
}

// Default sets the argument's default value.
func Default(v any) ArgOption {
	return func(s *ArgSpec) {
		s.Default = v
		s.HasDefault = true
	}
}

// Required marks the argument's value as mandatory.
func Required() ArgOption {
	return func(s *ArgSpec) { s.Required = true }
}

// WithType forces the type tokens are converted to, overriding any guess.
func WithType(t reflect.Type) ArgOption {
	return func(s *ArgSpec) { s.Type = t }
}

// WithAction sets the storage action.
func WithAction(a Action) ArgOption {
	return func(s *ArgSpec) { s.Action = a }
}

// WithChoices restricts the accepted values.
func WithChoices(choices ...any) ArgOption {
	return func(s *ArgSpec) { s.Choices = choices }
}

// WithCompleter attaches a shell-completion callback.
func WithCompleter(c Completer) ArgOption {
	return func(s *ArgSpec) { s.Completer = c }
}

// Deprecated records legacy option strings for the argument.
func Deprecated(names ...string) ArgOption {
	return func(s *ArgSpec) { s.DeprecatedNames = append(s.DeprecatedNames, names...) }
}

// ZeroOrMore marks the argument as a trailing positional collector.
func ZeroOrMore() ArgOption {
	return func(s *ArgSpec) { s.ZeroOrMore = true }
}

// Positional reports whether the spec describes a positional argument, based
// on whether its first name starts with a flag prefix.
func (s *ArgSpec) Positional() bool {
	pos, err := classify(s.Names)
	if err != nil {
		return false
	}
	return pos
}

// Dest returns the spec's destination key: the normalized identifier
// (underscores, no leading dashes) that unifies a CLI argument with a
// function parameter. Flag-style specs prefer their long form.
func (s *ArgSpec) Dest() string {
	return destination(s.Names)
}

// classify decides whether a set of option strings describes a positional
// argument. A spec with no names is invalid.
func classify(names []string) (positional bool, err error) {
	if len(names) == 0 || names[0] == "" {
		return false, errors.New("argument spec has no names")
	}
	return !strings.HasPrefix(names[0], "-"), nil
}

func destination(names []string) string {
	if len(names) == 0 {
		return ""
	}
	name := names[0]
	if strings.HasPrefix(name, "-") {
		for _, n := range names {
			if strings.HasPrefix(n, "--") {
				name = n
				break
			}
		}
	}
	return strings.ReplaceAll(strings.TrimLeft(name, "-"), "-", "_")
}

// optionStrings renders the spec's names for diagnostics, e.g. "-f/--format"
// or a bare positional name.
func (s *ArgSpec) optionStrings() string {
	return strings.Join(s.Names, "/")
}

// merge folds an explicit declaration into s. Declared fields take
// precedence field by field; fields absent from the declaration are left
// untouched. The declared option strings replace the inferred ones.
func (s *ArgSpec) merge(decl ArgSpec) {
	if len(decl.Names) > 0 {
		s.Names = decl.Names
	}
	if decl.HasDefault {
		s.Default = decl.Default
		s.HasDefault = true
	}
	if decl.Required {
		s.Required = true
	}
	if decl.Type != nil {
		s.Type = decl.Type
	}
	if decl.Action != "" {
		s.Action = decl.Action
	}
	if len(decl.Choices) > 0 {
		s.Choices = decl.Choices
	}
	if decl.Help != "" {
		s.Help = decl.Help
	}
	if decl.ZeroOrMore {
		s.ZeroOrMore = true
	}
	if decl.Completer != nil {
		s.Completer = decl.Completer
	}
	if len(decl.DeprecatedNames) > 0 {
		s.DeprecatedNames = append(s.DeprecatedNames, decl.DeprecatedNames...)
	}
}
