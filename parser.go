package argh

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Parser is one node of the command tree. It owns a pflag.FlagSet for
// flag-style arguments, an ordered list of positional arguments, and either
// a set of subcommands or a default command function; the two registration
// modes are mutually exclusive on a single node.
type Parser struct {
	name        string
	summary     string
	description string

	addHelp  bool
	helpFlag *bool

	flags       *pflag.FlagSet
	flagArgs    []*boundArg
	positionals []*boundArg
	dests       map[string]bool

	// Will be nil unless subcommands are registered with AddCommands.
	commands map[string]*Parser
	aliases  map[string]string

	handler *boundCommand

	out io.Writer
}

// boundArg ties a reconciled ArgSpec to its parse-time storage.
type boundArg struct {
	spec ArgSpec
	val  *argValue
}

// ParserOption configures a Parser created with New.
type ParserOption func(*Parser)

// WithDescription sets the text shown at the top of the parser's help.
func WithDescription(text string) ParserOption {
	return func(p *Parser) { p.description = text }
}

// WithSummary sets the one-line text shown beside the command's name in its
// parent's command listing.
func WithSummary(text string) ParserOption {
	return func(p *Parser) { p.summary = text }
}

// WithoutHelpFlag disables the automatic -h/--help flag.
func WithoutHelpFlag() ParserOption {
	return func(p *Parser) { p.addHelp = false }
}

// WithOutput redirects usage and error output, which goes to os.Stderr by
// default.
func WithOutput(w io.Writer) ParserOption {
	return func(p *Parser) { p.out = w }
}

// New creates a parser node. Unless disabled, a -h/--help flag is injected.
func New(name string, opts ...ParserOption) *Parser {
	p := &Parser{
		name:    name,
		addHelp: true,
		out:     os.Stderr,
		flags:   pflag.NewFlagSet(name, pflag.ContinueOnError),
		dests:   make(map[string]bool),
	}
	p.flags.SortFlags = false
	p.flags.SetOutput(io.Discard)
	p.flags.Usage = func() {}
	for _, opt := range opts {
		opt(p)
	}
	if p.addHelp {
		p.helpFlag = p.flags.BoolP("help", "h", false, "show this help message and exit")
	}
	return p
}

// Name returns the parser's command name.
func (p *Parser) Name() string { return p.name }

// Description returns the parser's description text.
func (p *Parser) Description() string { return p.description }

// SetDescription sets the parser's description text.
func (p *Parser) SetDescription(text string) { p.description = text }

// AddsHelp reports whether the parser auto-generates a -h/--help flag.
func (p *Parser) AddsHelp() bool { return p.addHelp }

// AddArgument registers one reconciled argument spec with the parser. The
// error, if any, reports the offending option strings; callers are expected
// to wrap it with command context.
func (p *Parser) AddArgument(spec ArgSpec) error {
	positional, err := classify(spec.Names)
	if err != nil {
		return err
	}
	dest := spec.Dest()
	if p.dests[dest] {
		return errors.Errorf("conflicting destination key %q", dest)
	}

	arg := &boundArg{spec: spec}
	if positional {
		if len(p.positionals) > 0 && p.positionals[len(p.positionals)-1].spec.ZeroOrMore {
			return errors.Errorf("argument %s: cannot follow a trailing collector", spec.optionStrings())
		}
		p.dests[dest] = true
		p.positionals = append(p.positionals, arg)
		return nil
	}

	long, shorthand, err := splitOptionStrings(spec.Names)
	if err != nil {
		return err
	}
	if p.flags.Lookup(long) != nil {
		return errors.Errorf("flag redefined: --%s", long)
	}
	if shorthand != "" {
		if f := p.flags.ShorthandLookup(shorthand); f != nil {
			return errors.Errorf("shorthand redefined: -%s", shorthand)
		}
	}

	arg.val = newArgValue(&arg.spec)
	fl := p.flags.VarPF(arg.val, long, shorthand, arg.spec.Help)
	switch arg.spec.Action {
	case ActionStoreTrue, ActionStoreFalse:
		fl.NoOptDefVal = "true"
	case ActionCount:
		fl.NoOptDefVal = "+1"
	}

	for _, old := range arg.spec.DeprecatedNames {
		if err := p.addDeprecatedAlias(arg, old, long); err != nil {
			return err
		}
	}

	p.dests[dest] = true
	p.flagArgs = append(p.flagArgs, arg)
	return nil
}

// addDeprecatedAlias registers a hidden flag for a legacy option string; it
// stores into the same destination and emits a notice when used.
func (p *Parser) addDeprecatedAlias(arg *boundArg, old, canonical string) error {
	name := strings.TrimLeft(old, "-")
	if name == "" {
		return errors.Errorf("invalid deprecated option string %q", old)
	}
	if p.flags.Lookup(name) != nil {
		return errors.Errorf("flag redefined: --%s", name)
	}
	fl := p.flags.VarPF(&deprecatedValue{
		inner:     arg.val,
		old:       old,
		canonical: "--" + canonical,
	}, name, "", "")
	fl.Hidden = true
	switch arg.spec.Action {
	case ActionStoreTrue, ActionStoreFalse:
		fl.NoOptDefVal = "true"
	case ActionCount:
		fl.NoOptDefVal = "+1"
	}
	return nil
}

// deprecatedValue wraps an argValue to announce legacy option usage before
// delegating.
type deprecatedValue struct {
	inner     *argValue
	old       string
	canonical string
}

func (d *deprecatedValue) Set(s string) error {
	deprecate("option string", d.old, d.canonical)
	return d.inner.Set(s)
}

func (d *deprecatedValue) String() string { return d.inner.String() }
func (d *deprecatedValue) Type() string   { return d.inner.Type() }

// splitOptionStrings extracts the long flag name and the one-letter
// shorthand from a flag-style spec's names. A spec with only a short form is
// registered under the bare letter, so "-x" stays usable.
func splitOptionStrings(names []string) (long, shorthand string, err error) {
	for _, n := range names {
		switch {
		case strings.HasPrefix(n, "--"):
			if long == "" {
				long = strings.TrimPrefix(n, "--")
			}
		case strings.HasPrefix(n, "-"):
			s := strings.TrimPrefix(n, "-")
			if len(s) != 1 {
				return "", "", errors.Errorf("invalid option string %q: short forms take a single character", n)
			}
			if shorthand == "" {
				shorthand = s
			}
		default:
			return "", "", errors.Errorf("invalid option string %q in flag-style argument", n)
		}
	}
	if long == "" {
		long = shorthand
	}
	if long == "" {
		return "", "", errors.New("argument spec has no names")
	}
	return long, shorthand, nil
}

// addCommand registers a subcommand. A nameless subcommand is a programming
// error. Registering the same name again replaces the previous entry.
func (p *Parser) addCommand(name string, child *Parser, aliases ...string) {
	if name == "" {
		panic("cannot add nameless subcommand")
	}
	if p.commands == nil {
		p.commands = make(map[string]*Parser)
		p.aliases = make(map[string]string)
	}
	p.commands[name] = child
	for _, a := range aliases {
		p.aliases[a] = name
	}
}

// resolve looks a token up among subcommand names and aliases.
func (p *Parser) resolve(token string) *Parser {
	if sub, ok := p.commands[token]; ok {
		return sub
	}
	if primary, ok := p.aliases[token]; ok {
		return p.commands[primary]
	}
	return nil
}

// setHandler binds the parser's default command function.
func (p *Parser) setHandler(bc *boundCommand) {
	p.handler = bc
}

// summaryLine returns the one-line text used in command listings.
func (p *Parser) summaryLine() string {
	if p.summary != "" {
		return p.summary
	}
	if i := strings.IndexByte(p.description, '\n'); i >= 0 {
		return strings.TrimSpace(p.description[:i])
	}
	return strings.TrimSpace(p.description)
}
