package params_test

import (
	"testing"

	. "github.com/pseudomuto/dalsql/pkg/params"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name     string
		expected Type
	}{
		{"int", TypeInteger},
		{"INTEGER", TypeInteger},
		{"bigint", TypeBigInt},
		{"varchar", TypeVarchar},
		{"string", TypeVarchar},
		{"nvarchar", TypeNVarchar},
		{"bool", TypeBoolean},
		{"datetime", TypeTimestamp},
		{" decimal ", TypeDecimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := ParseType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.expected, typ)
		})
	}

	_, err := ParseType("uuidish")
	require.EqualError(t, err, `unknown parameter type: "uuidish"`)
}

func TestTypeText(t *testing.T) {
	b, err := TypeTimestamp.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "timestamp", string(b))

	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("smallint")))
	require.Equal(t, TypeSmallInt, typ)
	require.Error(t, typ.UnmarshalText([]byte("nope")))

	require.Equal(t, "unknown", Type(999).String())
}

func TestParseInMode(t *testing.T) {
	mode, err := ParseInMode("")
	require.NoError(t, err)
	require.Equal(t, InList, mode)

	mode, err = ParseInMode("Expanded")
	require.NoError(t, err)
	require.Equal(t, InExpanded, mode)

	_, err = ParseInMode("spread")
	require.EqualError(t, err, `unknown IN mode: "spread"`)
}
