package argh

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// boundCommand is a parser's default action: the function to invoke once
// parsing resolves to this node, plus the signature facts needed to bind
// parsed values into its options.
type boundCommand struct {
	name  string
	fn    reflect.Value
	facts SignatureFacts
}

// Dispatch parses os.Args and runs the resolved command. Errors are printed
// and the process exits non-zero; use DispatchArgs for error handling in
// code. When shell completion is requested through the environment, Dispatch
// prints candidates instead of running anything.
func (p *Parser) Dispatch() {
	if completionRequested() {
		for _, c := range p.completeLine(os.Getenv("COMP_LINE")) {
			fmt.Fprintln(os.Stdout, c)
		}
		return
	}
	if err := p.DispatchArgs(os.Args[1:]); err != nil {
		fmt.Fprintln(p.out, "error:", err)
		os.Exit(1)
	}
}

// DispatchArgs parses the given arguments and runs the resolved command.
func (p *Parser) DispatchArgs(args []string) error {
	return p.DispatchContext(context.Background(), args)
}

// DispatchContext is DispatchArgs with a caller-supplied context, passed
// through to command functions that accept one.
func (p *Parser) DispatchContext(ctx context.Context, args []string) error {
	// On a routing node, stop flag parsing at the first positional token
	// so subcommand flags are parsed by the subcommand.
	p.flags.SetInterspersed(len(p.commands) == 0)

	if err := p.flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			p.writeUsage(p.out)
			return nil
		}
		return err
	}
	if p.helpFlag != nil && *p.helpFlag {
		p.writeUsage(p.out)
		return nil
	}

	rest := p.flags.Args()

	// If the first positional argument matches the name (or an alias) of
	// a registered subcommand, run that subcommand.
	if len(p.commands) > 0 && len(rest) > 0 {
		if sub := p.resolve(rest[0]); sub != nil {
			return sub.DispatchContext(ctx, rest[1:])
		}
		if p.handler == nil {
			return errors.Errorf("no such command: %q", rest[0])
		}
	}

	// No command function bound here: a bare group (or root) only shows
	// its usage.
	if p.handler == nil {
		p.writeUsage(p.out)
		return nil
	}

	ns, err := p.buildNamespace(rest)
	if err != nil {
		return err
	}
	return p.handler.invoke(ctx, ns)
}

// buildNamespace validates required flags, binds positional tokens in list
// order and assembles the parse results.
func (p *Parser) buildNamespace(rest []string) (*Namespace, error) {
	ns := newNamespace()

	for _, arg := range p.flagArgs {
		if arg.spec.Required && !arg.val.set {
			return nil, errors.Errorf("argument %s is required", arg.spec.optionStrings())
		}
		if v, ok := arg.val.result(); ok {
			ns.set(arg.spec.Dest(), v)
		}
	}

	i := 0
	for _, arg := range p.positionals {
		if arg.spec.ZeroOrMore {
			collected, err := collectTrailing(&arg.spec, rest[i:])
			if err != nil {
				return nil, err
			}
			ns.set(arg.spec.Dest(), collected)
			i = len(rest)
			continue
		}
		if i >= len(rest) {
			return nil, errors.Errorf("missing positional argument: %s", arg.spec.Names[0])
		}
		v, err := convertPositional(&arg.spec, rest[i])
		if err != nil {
			return nil, err
		}
		ns.set(arg.spec.Dest(), v)
		i++
	}
	if i < len(rest) {
		return nil, errors.Errorf("unrecognized arguments: %s", strings.Join(rest[i:], " "))
	}
	return ns, nil
}

func convertPositional(spec *ArgSpec, token string) (any, error) {
	var v any = token
	if spec.Type != nil {
		parsed, err := parseLiteral(token, spec.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %s: invalid value %q", spec.Names[0], token)
		}
		v = parsed
	}
	if len(spec.Choices) > 0 && !containsChoice(spec.Choices, v) {
		return nil, errors.Errorf("argument %s: invalid choice %q (choose from %s)",
			spec.Names[0], token, renderChoices(spec.Choices))
	}
	return v, nil
}

func collectTrailing(spec *ArgSpec, tokens []string) (any, error) {
	if spec.Type == nil {
		return append([]string(nil), tokens...), nil
	}
	out := make([]any, 0, len(tokens))
	for _, tok := range tokens {
		v, err := convertPositional(spec, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// invoke calls the bound command function, binding the namespace into a
// fresh options struct unless the function asked for the namespace itself.
func (b *boundCommand) invoke(ctx context.Context, ns *Namespace) error {
	var in []reflect.Value
	if b.facts.TakesContext {
		in = append(in, reflect.ValueOf(ctx))
	}
	switch {
	case b.facts.NamespaceOnly:
		in = append(in, reflect.ValueOf(ns))
	case b.facts.Options != nil:
		optr := reflect.New(b.facts.Options)
		if err := bindOptions(b.facts, optr, ns); err != nil {
			return errors.Wrap(err, b.name)
		}
		in = append(in, optr)
	}
	out := b.fn.Call(in)
	if e := out[0].Interface(); e != nil {
		return e.(error)
	}
	return nil
}
