package argh

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// defaultArgumentTemplate is the fallback help text for arguments carrying a
// default value, so defaults stay visible in generated help.
const defaultArgumentTemplate = "default: %v"

// SetDefaultCommand binds fn as the parser's default command, using the
// package-level registry for any explicit declarations attached to fn.
//
// Argument specs inferred from the function's signature are merged with the
// explicitly declared ones; a declaration that does not conform to the
// signature raises an *AssemblingError. If the parser auto-generates a help
// flag, the option string "-h" is silently removed from any argument. If the
// parser has no description yet, the function's doc text becomes one.
func SetDefaultCommand(p *Parser, fn any) error {
	return defaultRegistry.SetDefaultCommand(p, fn)
}

// SetDefaultCommand binds fn as the parser's default command using this
// registry's metadata.
func (r *Registry) SetDefaultCommand(p *Parser, fn any) error {
	return setDefaultCommand(p, fn, r.lookup(fn), StructFacts{})
}

func setDefaultCommand(p *Parser, fn any, meta commandMeta, extractor FactsExtractor) error {
	name := meta.name
	if name == "" {
		name = functionName(fn)
	}

	facts, err := extractor.Extract(fn)
	if err != nil {
		return assemblingErrorf(name, "%v", err)
	}

	declared := append([]ArgSpec(nil), meta.args...)
	inferred := argsFromSignature(facts)

	if len(inferred) > 0 && len(declared) > 0 {
		// A mixture of declared and inferred arguments: reconcile the
		// declarations against the signature, keyed by destination.
		inferred, err = mergeDeclared(name, inferred, declared, facts.Extra != "")
		if err != nil {
			return err
		}
	}

	commandArgs := inferred
	if len(commandArgs) == 0 {
		commandArgs = declared
	}

	for _, spec := range commandArgs {
		spec = guess(spec)
		if spec.Help == "" && spec.HasDefault {
			spec.Help = fmt.Sprintf(defaultArgumentTemplate, spec.Default)
		}
		if p.AddsHelp() {
			spec.Names = stripShortHelp(spec.Names)
			if len(spec.Names) == 0 {
				continue
			}
		}
		if err := p.AddArgument(spec); err != nil {
			return errors.Wrapf(err, "%s: cannot add arg %s", name, spec.optionStrings())
		}
	}

	if meta.doc != "" && p.Description() == "" {
		p.SetDescription(meta.doc)
	}
	p.setHandler(&boundCommand{name: name, fn: reflect.ValueOf(fn), facts: facts})
	return nil
}

// mergeDeclared reconciles explicit declarations against the inferred list.
// The result preserves the inferred order, with declarations that match no
// signature parameter appended in their declared order; those are accepted
// only when the function has a variadic-keyword collector.
func mergeDeclared(fname string, inferred, declared []ArgSpec, hasExtra bool) ([]ArgSpec, error) {
	order := make([]string, 0, len(inferred))
	byDest := make(map[string]*ArgSpec, len(inferred))
	for i := range inferred {
		dest := inferred[i].Dest()
		order = append(order, dest)
		byDest[dest] = &inferred[i]
	}

	for _, decl := range declared {
		declPositional, err := classify(decl.Names)
		if err != nil {
			return nil, assemblingErrorf(fname, "%v", err)
		}
		dest := decl.Dest()

		spec, known := byDest[dest]
		if !known {
			if hasExtra {
				// The function accepts arbitrary extra keyword
				// values; adopt the declaration as-is.
				decl := decl
				order = append(order, dest)
				byDest[dest] = &decl
				continue
			}
			sig := make([]string, 0, len(order))
			for _, d := range order {
				sig = append(sig, byDest[d].optionStrings())
			}
			return nil, assemblingErrorf(fname, "argument %s does not fit function signature: %s",
				decl.optionStrings(), strings.Join(sig, ", "))
		}

		// The argument is already known from the function signature;
		// the declaration may only refine it, never flip its
		// positional/optional nature.
		if declPositional != spec.Positional() {
			kinds := map[bool]string{true: "positional", false: "optional"}
			return nil, assemblingErrorf(fname, "argument %q declared as %s (in function signature) and %s (via declaration)",
				dest, kinds[spec.Positional()], kinds[declPositional])
		}
		spec.merge(decl)
	}

	out := make([]ArgSpec, 0, len(order))
	for _, dest := range order {
		out = append(out, *byDest[dest])
	}
	return out, nil
}

// stripShortHelp removes "-h" from a spec's option strings so it cannot
// collide with the auto-generated help flag.
func stripShortHelp(names []string) []string {
	out := names[:0:0]
	for _, n := range names {
		if n != "-h" {
			out = append(out, n)
		}
	}
	return out
}
