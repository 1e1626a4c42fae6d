package rns

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestComposition(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("decompose recomposes to the initial element", prop.ForAll(
		func(a, b, c, d uint64) bool {
			e := new(big.Int).SetUint64(a)
			for _, w := range []uint64{b, c, d} {
				e.Lsh(e, 64)
				e.Add(e, new(big.Int).SetUint64(w))
			}
			limbs, err := Decompose(e, NumberOfLimbs, 68)
			if err != nil {
				return false
			}
			return Compose(limbs, 68).Cmp(e) == 0
		},
		gen.UInt64(),
		gen.UInt64(),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("limbs stay within the limb width", prop.ForAll(
		func(a, b uint64) bool {
			e := new(big.Int).SetUint64(a)
			e.Lsh(e, 64)
			e.Add(e, new(big.Int).SetUint64(b))
			limbs, err := Decompose(e, NumberOfLimbs, 68)
			if err != nil {
				return false
			}
			for _, limb := range limbs {
				if limb.BitLen() > 68 {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestDecomposeErrors(t *testing.T) {
	_, err := Decompose(big.NewInt(-1), NumberOfLimbs, 68)
	require.Error(t, err)

	tooBig := new(big.Int).Lsh(big.NewInt(1), NumberOfLimbs*68)
	_, err = Decompose(tooBig, NumberOfLimbs, 68)
	require.Error(t, err)

	justFits := new(big.Int).Sub(tooBig, big.NewInt(1))
	limbs, err := Decompose(justFits, NumberOfLimbs, 68)
	require.NoError(t, err)
	require.Equal(t, 0, Compose(limbs, 68).Cmp(justFits))
}
