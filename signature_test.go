package argh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHandlerShapes(t *testing.T) {
	type opts struct{ Key string }

	tests := []struct {
		name      string
		fn        any
		wantErr   bool
		wantCtx   bool
		wantNS    bool
		wantOpts  bool
		numParams int
	}{
		{name: "niladic", fn: func() error { return nil }},
		{name: "context only", fn: func(ctx context.Context) error { return nil }, wantCtx: true},
		{name: "options", fn: func(o *opts) error { return nil }, wantOpts: true, numParams: 1},
		{name: "context and options", fn: func(ctx context.Context, o *opts) error { return nil }, wantCtx: true, wantOpts: true, numParams: 1},
		{name: "namespace", fn: func(ns *Namespace) error { return nil }, wantNS: true},
		{name: "context and namespace", fn: func(ctx context.Context, ns *Namespace) error { return nil }, wantCtx: true, wantNS: true},
		{name: "not a function", fn: 42, wantErr: true},
		{name: "no error return", fn: func() {}, wantErr: true},
		{name: "non-struct options", fn: func(n int) error { return nil }, wantErr: true},
		{name: "options by value", fn: func(o opts) error { return nil }, wantErr: true},
		{name: "too many parameters", fn: func(ctx context.Context, o *opts, x int) error { return nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, err := StructFacts{}.Extract(tt.fn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCtx, facts.TakesContext)
			assert.Equal(t, tt.wantNS, facts.NamespaceOnly)
			assert.Equal(t, tt.wantOpts, facts.Options != nil)
			assert.Len(t, facts.Params, tt.numParams)
		})
	}
}

func TestExtractFieldFacts(t *testing.T) {
	type opts struct {
		HTTPPort int           `default:"8080"`
		Wait     time.Duration `default:"5s"`
		Renamed  string        `argh:"dest"`
		Skipped  string        `argh:"-"`
		hidden   string
		Extras   map[string]string `argh:",extra"`
		Rest     []string          `argh:",trailing"`
	}
	facts := extract(t, func(o *opts) error { return nil })

	require.Len(t, facts.Params, 3)

	assert.Equal(t, "http_port", facts.Params[0].Name)
	assert.Equal(t, 8080, facts.Params[0].Default)

	assert.Equal(t, "wait", facts.Params[1].Name)
	assert.Equal(t, 5*time.Second, facts.Params[1].Default)

	assert.Equal(t, "dest", facts.Params[2].Name)

	assert.Equal(t, "extras", facts.Extra)
	assert.Equal(t, "rest", facts.Trailing)
}

func TestExtractBadTags(t *testing.T) {
	t.Run("bad default literal", func(t *testing.T) {
		type opts struct {
			Port int `default:"eighty"`
		}
		_, err := StructFacts{}.Extract(func(o *opts) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Port")
	})

	t.Run("trailing on non-slice", func(t *testing.T) {
		type opts struct {
			Rest string `argh:",trailing"`
		}
		_, err := StructFacts{}.Extract(func(o *opts) error { return nil })
		require.Error(t, err)
	})

	t.Run("extra on non-map", func(t *testing.T) {
		type opts struct {
			Extras []string `argh:",extra"`
		}
		_, err := StructFacts{}.Extract(func(o *opts) error { return nil })
		require.Error(t, err)
	})
}

func TestExtractTypedChoices(t *testing.T) {
	type opts struct {
		Level int `default:"1" choices:"1,2,3"`
	}
	facts := extract(t, func(o *opts) error { return nil })
	require.Len(t, facts.Params, 1)
	assert.Equal(t, []any{1, 2, 3}, facts.Params[0].Choices)
}

func TestNameCasing(t *testing.T) {
	assert.Equal(t, "http_port", snakeCase("HTTPPort"))
	assert.Equal(t, "dry_run", snakeCase("DryRun"))
	assert.Equal(t, "key", snakeCase("Key"))
	assert.Equal(t, "list-users", kebabCase("ListUsers"))
	assert.Equal(t, "list-users", kebabCase("list_users"))
}
