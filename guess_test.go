package argh

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuess(t *testing.T) {
	stringType := reflect.TypeOf("")
	intType := reflect.TypeOf(0)

	tests := []struct {
		name       string
		spec       ArgSpec
		wantAction Action
		wantType   reflect.Type
	}{
		{
			name:       "true default toggles off",
			spec:       ArgSpec{Default: true, HasDefault: true},
			wantAction: ActionStoreFalse,
		},
		{
			name:       "false default toggles on",
			spec:       ArgSpec{Default: false, HasDefault: true},
			wantAction: ActionStoreTrue,
		},
		{
			name:       "explicit action wins over bool default",
			spec:       ArgSpec{Default: true, HasDefault: true, Action: ActionStoreTrue},
			wantAction: ActionStoreTrue,
		},
		{
			name:     "int default implies int type",
			spec:     ArgSpec{Default: 3, HasDefault: true},
			wantType: intType,
		},
		{
			name:     "choices imply type of first choice",
			spec:     ArgSpec{Choices: []any{1, 2, 3}},
			wantType: intType,
		},
		{
			name:     "explicit type wins over default",
			spec:     ArgSpec{Default: 3, HasDefault: true, Type: stringType},
			wantType: stringType,
		},
		{
			name:     "explicit type wins over choices",
			spec:     ArgSpec{Choices: []any{1, 2, 3}, Type: stringType},
			wantType: stringType,
		},
		{
			name:       "counter never gets a type",
			spec:       ArgSpec{Default: 3, HasDefault: true, Action: ActionCount},
			wantAction: ActionCount,
		},
		{
			name:     "default wins over choices for the guess",
			spec:     ArgSpec{Default: 3, HasDefault: true, Choices: []any{"a"}},
			wantType: intType,
		},
		{
			name:       "append with slice default types elements",
			spec:       ArgSpec{Default: []int{1}, HasDefault: true, Action: ActionAppend},
			wantAction: ActionAppend,
			wantType:   intType,
		},
		{
			name: "nil default guesses nothing",
			spec: ArgSpec{Default: nil, HasDefault: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guess(tt.spec)
			assert.Equal(t, tt.wantAction, got.Action)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}
}
