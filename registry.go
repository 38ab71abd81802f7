package argh

import (
	"reflect"
	"runtime"
	"strings"
)

// commandMeta is the CLI metadata accumulated for one command function:
// its declared arguments, override name, aliases and doc text.
type commandMeta struct {
	name    string
	aliases []string
	doc     string
	args    []ArgSpec
}

// Registry is an explicit side table mapping command functions to their CLI
// metadata. It is populated through the builder returned by Command before
// the tree is assembled, and read-only during reconciliation.
type Registry struct {
	meta map[uintptr]*commandMeta
}

// NewRegistry creates an empty metadata registry.
func NewRegistry() *Registry {
	return &Registry{meta: make(map[uintptr]*commandMeta)}
}

// defaultRegistry backs the package-level convenience functions.
var defaultRegistry = NewRegistry()

// Command returns a builder for fn's CLI metadata. Functions are identified
// by their code pointer: top-level functions are always distinct, but
// closures created from the same function literal share an identity and
// cannot carry separate metadata.
func (r *Registry) Command(fn any) *CommandBuilder {
	key := funcKey(fn)
	m, ok := r.meta[key]
	if !ok {
		m = &commandMeta{}
		r.meta[key] = m
	}
	return &CommandBuilder{meta: m}
}

// Command returns a builder for fn's CLI metadata in the package-level
// registry.
func Command(fn any) *CommandBuilder {
	return defaultRegistry.Command(fn)
}

// lookup returns fn's accumulated metadata, or a zero value when none was
// registered.
func (r *Registry) lookup(fn any) commandMeta {
	if m, ok := r.meta[funcKey(fn)]; ok {
		return *m
	}
	return commandMeta{}
}

func funcKey(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic("argh: commands must be functions")
	}
	return v.Pointer()
}

// CommandBuilder accumulates CLI metadata for one command function.
type CommandBuilder struct {
	meta *commandMeta
}

// Named overrides the command name inferred from the function name.
func (b *CommandBuilder) Named(name string) *CommandBuilder {
	b.meta.name = name
	return b
}

// Aliases attaches alternative command names; they resolve identically to
// the primary name.
func (b *CommandBuilder) Aliases(names ...string) *CommandBuilder {
	b.meta.aliases = append(b.meta.aliases, names...)
	return b
}

// Doc attaches the command's doc text, used as the parser description and,
// via its first line, as the listing help.
func (b *CommandBuilder) Doc(text string) *CommandBuilder {
	b.meta.doc = text
	return b
}

// Arg declares an argument for the command, refining or extending what the
// signature-inference step produces.
func (b *CommandBuilder) Arg(name string, opts ...ArgOption) *CommandBuilder {
	b.meta.args = append(b.meta.args, Arg(name, opts...))
	return b
}

// Declare appends a fully built argument declaration.
func (b *CommandBuilder) Declare(spec ArgSpec) *CommandBuilder {
	b.meta.args = append(b.meta.args, spec)
	return b
}

// functionName derives the default command name from the function's own
// name: "ListUsers" or "list_users" become "list-users".
func functionName(fn any) string {
	rf := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	// method values carry a "-fm" suffix
	name = strings.TrimSuffix(name, "-fm")
	return kebabCase(name)
}
