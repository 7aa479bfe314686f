package models

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigInt_Scan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"string", "12345", "12345"},
		{"bytes", []byte("678"), "678"},
		{"int64", int64(42), "42"},
		{"nil", nil, "0"},
		{"empty string", "", "0"},
		{"uint256 scale", "115792089237316195423570985008687907853269984665640564039457584007913129639935",
			"115792089237316195423570985008687907853269984665640564039457584007913129639935"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b BigInt
			require.NoError(t, b.Scan(tt.input))
			assert.Equal(t, tt.want, b.String())
		})
	}

	t.Run("garbage rejected", func(t *testing.T) {
		var b BigInt
		assert.Error(t, b.Scan("not a number"))
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		var b BigInt
		assert.Error(t, b.Scan(3.14))
	})
}

func TestBigInt_Value(t *testing.T) {
	b := NewBigInt(big.NewInt(999))
	v, err := b.Value()
	require.NoError(t, err)
	assert.Equal(t, "999", v)
}

func TestBigInt_JSON(t *testing.T) {
	t.Run("marshals as decimal string", func(t *testing.T) {
		out, err := NewBigIntFromUint64(77).MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `"77"`, string(out))
	})

	t.Run("unmarshals quoted and bare", func(t *testing.T) {
		var b BigInt
		require.NoError(t, b.UnmarshalJSON([]byte(`"123"`)))
		assert.Equal(t, "123", b.String())

		require.NoError(t, b.UnmarshalJSON([]byte(`456`)))
		assert.Equal(t, "456", b.String())
	})
}

func TestBigInt_Int_Copies(t *testing.T) {
	b := NewBigInt(big.NewInt(10))
	b.Int().SetInt64(999)
	assert.Equal(t, "10", b.String())
}
