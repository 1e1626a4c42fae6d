package rns

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

const testBitLenLimb = 68

func TestConstruct(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	var w Secp256k1Fp
	var n BN254Fr
	require.Equal(t, 0, r.WrongModulus.Cmp(w.Modulus()))
	require.Equal(t, 0, r.NativeModulus.Cmp(n.Modulus()))

	binary := new(big.Int).Lsh(big.NewInt(1), testBitLenLimb*NumberOfLimbs)
	require.Equal(t, 0, r.BinaryModulus.Cmp(binary))
	require.Equal(t, 0, r.CRTModulus.Cmp(new(big.Int).Mul(binary, r.NativeModulus)))

	// shifters invert each other in the native field
	for _, pair := range [][2]*big.Int{
		{r.LeftShifterR, r.RightShifterR},
		{r.LeftShifter2R, r.RightShifter2R},
	} {
		product := new(big.Int).Mul(pair[0], pair[1])
		product.Mod(product, r.NativeModulus)
		require.Equal(t, 0, product.Cmp(big.NewInt(1)))
	}

	// the negative modulus recomposes to 2^(4r) - w
	negative := Compose(r.NegativeWrongModulusDecomposed, testBitLenLimb)
	require.Equal(t, 0, negative.Cmp(new(big.Int).Sub(binary, r.WrongModulus)))
	require.Equal(t, 0, r.WrongModulusMinusOne.Value().Cmp(new(big.Int).Sub(r.WrongModulus, big.NewInt(1))))

	// base aux vanishes modulo the wrong field, exceeds any remainder and
	// dominates reduced limbs
	require.Equal(t, 0, new(big.Int).Mod(r.BaseAux.Value(), r.WrongModulus).Sign())
	require.True(t, r.BaseAux.Value().Cmp(r.MaxRemainder) > 0)
	for i := 0; i < NumberOfLimbs-1; i++ {
		require.True(t, r.BaseAux.Limb(i).Value().Cmp(r.MaxReducedLimb) >= 0)
	}
	require.True(t, r.BaseAux.Limb(NumberOfLimbs-1).Value().Cmp(r.MaxMostSignificantReducedLimb) >= 0)

	require.Equal(t, uint(testBitLenLimb/NumberOfLookupLimbs), r.BitLenLookup)
	require.Len(t, r.OverflowLengths(), 7)
	for _, overflow := range r.OverflowLengths()[4:] {
		require.Less(t, overflow, r.BitLenLookup)
	}
}

func TestConstructDeterministic(t *testing.T) {
	r1 := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)
	r2 := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	opts := cmp.Options{
		cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 }),
		cmp.Comparer(func(a, b *Integer) bool { return a.Equal(b) }),
		cmpopts.IgnoreUnexported(Rns[Secp256k1Fp, BN254Fr]{}),
	}
	if diff := cmp.Diff(r1, r2, opts); diff != "" {
		t.Errorf("parameter derivation is not deterministic (-first +second):\n%s", diff)
	}
}

func TestConstructPairs(t *testing.T) {
	// wrong modulus below the native modulus
	Construct[Secp256k1Fr, BN254Fr](testBitLenLimb)
	// wrong modulus above the native modulus
	Construct[BN254Fp, BN254Fr](testBitLenLimb)
	Construct[BN254Fr, BLS12377Fr](testBitLenLimb)
}

func TestConstructRejectsNarrowBinaryModulus(t *testing.T) {
	require.Panics(t, func() {
		Construct[Secp256k1Fp, BN254Fr](60)
	})
}

func TestMulIdentity(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	ctx := r.Mul(r.One(), r.One())
	require.Equal(t, 0, ctx.Result.Value().Cmp(big.NewInt(1)))
	require.NotNil(t, ctx.Quotient.Long)
	require.Equal(t, 0, ctx.Quotient.Long.Value().Sign())
}

func TestScale(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	a := r.New(new(big.Int).Sub(r.WrongModulus, big.NewInt(7)))
	k := big.NewInt(1 << 20)
	scaled := r.Scale(a, k)

	// small scalars keep the limb products below the native modulus, the
	// composition scales exactly
	expected := new(big.Int).Mul(a.Value(), k)
	require.Equal(t, 0, scaled.Value().Cmp(expected))
}

func TestIntegerRoundTrip(t *testing.T) {
	r := Construct[Secp256k1Fp, BN254Fr](testBitLenLimb)

	e := new(big.Int).Sub(r.WrongModulus, big.NewInt(3))
	a := r.New(e)
	require.Equal(t, 0, a.Value().Cmp(e))
	require.Equal(t, uint(testBitLenLimb), a.BitLenLimb())

	bytes := make([]byte, 32)
	for i := range bytes {
		bytes[i] = byte(i + 1)
	}
	b, err := IntegerFromBytesLE(bytes, testBitLenLimb)
	require.NoError(t, err)
	expected := new(big.Int)
	for i := len(bytes) - 1; i >= 0; i-- {
		expected.Lsh(expected, 8)
		expected.Add(expected, big.NewInt(int64(bytes[i])))
	}
	require.Equal(t, 0, b.Value().Cmp(expected))
}
