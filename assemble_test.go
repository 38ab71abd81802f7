package argh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeDeclaredRefinesInferred(t *testing.T) {
	type opts struct {
		Format string `default:"json"`
	}
	fn := func(o *opts) error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Arg("--format", Help("output format"))

	p := New("get")
	require.NoError(t, reg.SetDefaultCommand(p, fn))

	// exactly one reconciled spec, carrying the declared help
	require.Len(t, p.flagArgs, 1)
	assert.Equal(t, "output format", p.flagArgs[0].spec.Help)
	assert.Equal(t, "json", p.flagArgs[0].spec.Default)
	require.NotNil(t, p.flags.Lookup("format"))
}

func TestMergeDeclaredNamesReplaceInferred(t *testing.T) {
	type opts struct {
		Format string `default:"json"`
	}
	fn := func(o *opts) error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Arg("--format", Short("-F"))

	p := New("get")
	require.NoError(t, reg.SetDefaultCommand(p, fn))

	fl := p.flags.Lookup("format")
	require.NotNil(t, fl)
	assert.Equal(t, "F", fl.Shorthand)
}

func TestDeclaredArgDoesNotFitSignature(t *testing.T) {
	type opts struct {
		Format string `default:"json"`
	}
	fn := func(o *opts) error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Named("export").Arg("--bogus")

	err := reg.SetDefaultCommand(New("export"), fn)
	var ae *AssemblingError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "export", ae.Func)
	assert.Contains(t, ae.Error(), "--bogus")
	assert.Contains(t, ae.Error(), "does not fit function signature")
	// the known set is listed for diagnosis
	assert.Contains(t, ae.Error(), "-f/--format")
}

func TestDeclaredArgAdoptedWithExtraCollector(t *testing.T) {
	type opts struct {
		Format string            `default:"json"`
		Extras map[string]string `argh:",extra"`
	}
	fn := func(o *opts) error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Arg("--tag", Default("none"))

	p := New("export")
	require.NoError(t, reg.SetDefaultCommand(p, fn))
	require.NotNil(t, p.flags.Lookup("tag"))
}

func TestClassificationConflict(t *testing.T) {
	type opts struct {
		Key string
	}
	fn := func(o *opts) error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Named("get").Arg("--key", Help("x"))

	err := reg.SetDefaultCommand(New("get"), fn)
	var ae *AssemblingError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "get", ae.Func)
	assert.Contains(t, ae.Error(), `"key"`)
	assert.Contains(t, ae.Error(), "positional")
	assert.Contains(t, ae.Error(), "optional")
}

func TestDeclaredOnlyWithNamespaceHandler(t *testing.T) {
	fn := func(ns *Namespace) error { return nil }

	reg := NewRegistry()
	reg.Command(fn).
		Arg("pattern", Help("search pattern")).
		Arg("--limit", Default(10))

	p := New("search")
	require.NoError(t, reg.SetDefaultCommand(p, fn))

	require.Len(t, p.positionals, 1)
	assert.Equal(t, "pattern", p.positionals[0].spec.Names[0])

	require.Len(t, p.flagArgs, 1)
	// default 10 implies an integer type
	assert.Equal(t, "int", p.flagArgs[0].val.Type())
}

func TestDocBecomesDescription(t *testing.T) {
	fn := func() error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Doc("Fetch a record from the store.")

	p := New("get")
	require.NoError(t, reg.SetDefaultCommand(p, fn))
	assert.Equal(t, "Fetch a record from the store.", p.Description())

	// an existing description is kept
	p2 := New("get", WithDescription("already set"))
	require.NoError(t, reg.SetDefaultCommand(p2, fn))
	assert.Equal(t, "already set", p2.Description())
}

func TestShortHelpNameStrippedSilently(t *testing.T) {
	fn := func(ns *Namespace) error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Arg("--hard", Short("-h"))

	p := New("hit")
	require.NoError(t, reg.SetDefaultCommand(p, fn))

	fl := p.flags.Lookup("hard")
	require.NotNil(t, fl)
	assert.Empty(t, fl.Shorthand)

	// without the auto help flag the short form is kept
	p2 := New("hit", WithoutHelpFlag())
	require.NoError(t, reg.SetDefaultCommand(p2, fn))
	fl2 := p2.flags.Lookup("hard")
	require.NotNil(t, fl2)
	assert.Equal(t, "h", fl2.Shorthand)
}

func TestRegistrationFailureKeepsContext(t *testing.T) {
	fn := func(ns *Namespace) error { return nil }

	reg := NewRegistry()
	reg.Command(fn).Named("dupes").Arg("--dup").Arg("--dup")

	err := reg.SetDefaultCommand(New("dupes"), fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dupes: cannot add arg --dup")
	assert.Contains(t, err.Error(), "conflicting destination key")
}

func TestFallbackHelpShowsDefault(t *testing.T) {
	type opts struct {
		Retries int `default:"3"`
	}
	fn := func(o *opts) error { return nil }

	p := New("sync")
	reg := NewRegistry()
	require.NoError(t, reg.SetDefaultCommand(p, fn))

	require.Len(t, p.flagArgs, 1)
	assert.Equal(t, "default: 3", p.flagArgs[0].spec.Help)
}

func TestNoDeclarationsPassThrough(t *testing.T) {
	type opts struct {
		Key    string
		Format string `default:"json"`
	}
	fn := func(o *opts) error { return nil }

	p := New("get")
	require.NoError(t, NewRegistry().SetDefaultCommand(p, fn))

	require.Len(t, p.positionals, 1)
	require.Len(t, p.flagArgs, 1)
}
