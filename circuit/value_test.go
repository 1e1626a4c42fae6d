package circuit

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	known := Known(big.NewInt(42))
	require.True(t, known.IsKnown())
	v, ok := known.Get()
	require.True(t, ok)
	require.Equal(t, int64(42), v.Int64())

	unknown := Unknown[*big.Int]()
	require.False(t, unknown.IsKnown())
	_, ok = unknown.Get()
	require.False(t, ok)
}

func TestMapValue(t *testing.T) {
	double := func(e *big.Int) *big.Int { return new(big.Int).Lsh(e, 1) }

	v, ok := MapValue(Known(big.NewInt(21)), double).Get()
	require.True(t, ok)
	require.Equal(t, int64(42), v.Int64())

	// unknown propagates, the closure must not run
	mapped := MapValue(Unknown[*big.Int](), func(e *big.Int) *big.Int {
		t.Fatal("mapped an unknown value")
		return nil
	})
	require.False(t, mapped.IsKnown())
}

func TestMapValue2(t *testing.T) {
	add := func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

	v, ok := MapValue2(Known(big.NewInt(40)), Known(big.NewInt(2)), add).Get()
	require.True(t, ok)
	require.Equal(t, int64(42), v.Int64())

	require.False(t, MapValue2(Known(big.NewInt(1)), Unknown[*big.Int](), add).IsKnown())
	require.False(t, MapValue2(Unknown[*big.Int](), Known(big.NewInt(1)), add).IsKnown())
}
