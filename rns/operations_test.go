package rns

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func testIterations(t *testing.T) int {
	if testing.Short() {
		return 50
	}
	return 10000
}

func randomBelow(t *testing.T, bound *big.Int) *big.Int {
	t.Helper()
	e, err := rand.Int(rand.Reader, bound)
	require.NoError(t, err)
	return e
}

func randomUnreduced[W FieldParams, N FieldParams](t *testing.T, r *Rns[W, N]) *Integer {
	t.Helper()
	bound := new(big.Int).Add(r.MaxUnreducedLimb, big.NewInt(1))
	limbs := make([]*big.Int, NumberOfLimbs)
	for i := range limbs {
		limbs[i] = randomBelow(t, bound)
	}
	return r.NewFromLimbs(limbs)
}

func TestReduce(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	for i := 0; i < testIterations(t); i++ {
		a := randomUnreduced(t, r)
		ctx := r.Reduce(a)

		require.NotNil(t, ctx.Quotient.Short)
		require.LessOrEqual(t, uint(ctx.Quotient.Short.BitLen()), r.BitLenLimb)

		// a = q*w + r over the integers
		recovered := new(big.Int).Mul(ctx.Quotient.Short, r.WrongModulus)
		recovered.Add(recovered, ctx.Result.Value())
		require.Equal(t, 0, recovered.Cmp(a.Value()))
		require.True(t, ctx.Result.Value().Cmp(r.WrongModulus) < 0)
	}
}

func TestMul(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	for i := 0; i < testIterations(t); i++ {
		a := r.New(randomBelow(t, r.WrongModulus))
		b := r.New(randomBelow(t, r.WrongModulus))
		ctx := r.Mul(a, b)

		require.NotNil(t, ctx.Quotient.Long)

		// a*b = q*w + r over the integers
		recovered := new(big.Int).Mul(ctx.Quotient.Long.Value(), r.WrongModulus)
		recovered.Add(recovered, ctx.Result.Value())
		require.Equal(t, 0, recovered.Cmp(new(big.Int).Mul(a.Value(), b.Value())))
		require.True(t, ctx.Result.Value().Cmp(r.WrongModulus) < 0)
	}
}

func TestInvert(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	for i := 0; i < testIterations(t); i++ {
		a := r.New(randomBelow(t, r.WrongModulus))
		if a.Value().Sign() == 0 {
			continue
		}
		inv, ok := r.Invert(a)
		require.True(t, ok)

		product := new(big.Int).Mul(a.Value(), inv.Value())
		product.Mod(product, r.WrongModulus)
		require.Equal(t, 0, product.Cmp(big.NewInt(1)))
	}

	_, ok := r.Invert(r.Zero())
	require.False(t, ok)
}

func TestDiv(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	for i := 0; i < testIterations(t); i++ {
		a := r.New(randomBelow(t, r.WrongModulus))
		b := r.New(randomBelow(t, r.WrongModulus))
		if b.Value().Sign() == 0 {
			continue
		}
		c, ok := r.Div(a, b)
		require.True(t, ok)

		recovered := new(big.Int).Mul(c.Value(), b.Value())
		recovered.Mod(recovered, r.WrongModulus)
		require.Equal(t, 0, recovered.Cmp(new(big.Int).Mod(a.Value(), r.WrongModulus)))
	}

	_, ok := r.Div(r.One(), r.Zero())
	require.False(t, ok)
}

func TestMakeAux(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	for i := 0; i < testIterations(t); i++ {
		maxVals := randomUnreduced(t, r).Limbs()
		aux := r.MakeAux(maxVals)

		require.Equal(t, 0, new(big.Int).Mod(aux.Value(), r.WrongModulus).Sign())
		for j := 0; j < NumberOfLimbs; j++ {
			require.True(t, aux.Limb(j).Value().Cmp(maxVals[j]) >= 0)
		}
	}

	// bounds below the base leave the base untouched
	reduced := make([]*big.Int, NumberOfLimbs)
	for i := range reduced {
		reduced[i] = new(big.Int)
	}
	require.True(t, r.MakeAux(reduced).Equal(r.BaseAux))
}

func TestCompareToModulus(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)
	pMinusOne := new(big.Int).Sub(r.WrongModulus, big.NewInt(1))

	// canonical values never borrow out of the most significant limb
	for i := 0; i < testIterations(t); i++ {
		a := r.New(randomBelow(t, r.WrongModulus))
		cmp := r.CompareToModulus(a)
		require.False(t, cmp.Borrow[NumberOfLimbs-1])

		expected := new(big.Int).Sub(pMinusOne, a.Value())
		require.Equal(t, 0, cmp.Result.Value().Cmp(expected))
	}

	cmp := r.CompareToModulus(r.Zero())
	require.False(t, cmp.Borrow[NumberOfLimbs-1])
	require.Equal(t, 0, cmp.Result.Value().Cmp(pMinusOne))

	cmp = r.CompareToModulus(r.New(pMinusOne))
	require.False(t, cmp.Borrow[NumberOfLimbs-1])
	require.Equal(t, 0, cmp.Result.Value().Sign())

	// the modulus itself borrows all the way through
	cmp = r.CompareToModulus(r.NewFromBig(r.WrongModulus))
	require.True(t, cmp.Borrow[NumberOfLimbs-1])
}
