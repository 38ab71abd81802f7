package argh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionNameDerivation(t *testing.T) {
	assert.Equal(t, "list-users", functionName(listUsers))
}

func TestRegistryBuilderAccumulates(t *testing.T) {
	fn := func() error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Named("rm").Aliases("remove", "del")
	reg.Command(fn).Doc("Remove things.").Arg("--force")

	meta := reg.lookup(fn)
	assert.Equal(t, "rm", meta.name)
	assert.Equal(t, []string{"remove", "del"}, meta.aliases)
	assert.Equal(t, "Remove things.", meta.doc)
	require.Len(t, meta.args, 1)
	assert.Equal(t, []string{"--force"}, meta.args[0].Names)
}

func TestRegistriesAreIsolated(t *testing.T) {
	fn := func() error { return nil }

	reg1 := NewRegistry()
	reg1.Command(fn).Named("one")

	reg2 := NewRegistry()
	assert.Empty(t, reg2.lookup(fn).name)
}

func TestRegistryRejectsNonFunctions(t *testing.T) {
	assert.Panics(t, func() { NewRegistry().Command(42) })
}

func TestNamespaceAccessors(t *testing.T) {
	ns := newNamespace()
	ns.set("name", "x")
	ns.set("count", 3)
	ns.set("on", true)
	ns.set("files", []string{"a", "b"})
	ns.set("nums", []any{1, 2})

	assert.Equal(t, "x", ns.String("name"))
	assert.Equal(t, 3, ns.Int("count"))
	assert.True(t, ns.Bool("on"))
	assert.Equal(t, []string{"a", "b"}, ns.Strings("files"))
	assert.Equal(t, []string{"1", "2"}, ns.Strings("nums"))
	assert.Equal(t, []string{"count", "files", "name", "nums", "on"}, ns.Keys())

	_, ok := ns.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", ns.String("missing"))
}
