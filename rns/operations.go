package rns

import (
	"math/big"
)

// Quotient is the quotient witness of a reduction or a multiplication.
// Exactly one of the fields is set: Short for reductions, where the
// quotient fits a single native field element, Long for multiplications,
// where it is a full integer.
type Quotient struct {
	Short *big.Int
	Long  *Integer
}

// ReductionContext carries everything a circuit needs to constrain one
// reduction or multiplication: the canonical result, the quotient witness,
// the intermediate convolution terms t and the four residue witnesses of
// the two-window carry check.
type ReductionContext struct {
	Result   *Integer
	Quotient Quotient
	T        []*big.Int
	U0       *big.Int
	U1       *big.Int
	V0       *big.Int
	V1       *big.Int
}

// ComparisonResult is the borrow-propagated difference
// (wrongModulus-1) - integer, consumed by the canonicality check.
type ComparisonResult struct {
	Result *Integer
	Borrow [NumberOfLimbs]bool
}

// Reduce canonicalizes an over-large integer modulo the wrong modulus. The
// input limbs may exceed the reduced bound but must stay within
// MaxUnreducedLimb; then the quotient provably fits a single limb.
func (r *Rns[W, N]) Reduce(a *Integer) *ReductionContext {
	quotient, result := new(big.Int).DivMod(a.Value(), r.WrongModulus, new(big.Int))
	if uint(quotient.BitLen()) > r.BitLenLimb {
		panic("rns: reduction quotient exceeds a single limb")
	}

	t := make([]*big.Int, NumberOfLimbs)
	for i := range t {
		t[i] = new(big.Int).Mul(r.NegativeWrongModulusDecomposed[i], quotient)
		t[i].Add(t[i], a.LimbValue(i))
		r.redNative(t[i])
	}

	res := r.NewFromBig(result)
	u0, u1, v0, v1 := r.residues(t, res)

	return &ReductionContext{
		Result:   res,
		Quotient: Quotient{Short: quotient},
		T:        t,
		U0:       u0,
		U1:       u1,
		V0:       v0,
		V1:       v1,
	}
}

// Mul computes (a*b) mod wrongModulus with full quotient and remainder
// witnesses. Operands must be within the MaxOperand range.
func (r *Rns[W, N]) Mul(a, b *Integer) *ReductionContext {
	product := new(big.Int).Mul(a.Value(), b.Value())
	quotient, result := new(big.Int).DivMod(product, r.WrongModulus, new(big.Int))

	q := r.NewFromBig(quotient)
	res := r.NewFromBig(result)

	t := make([]*big.Int, NumberOfLimbs)
	for k := range t {
		t[k] = new(big.Int)
		for i := 0; i <= k; i++ {
			j := k - i
			t[k].Add(t[k], new(big.Int).Mul(a.LimbValue(i), b.LimbValue(j)))
			t[k].Add(t[k], new(big.Int).Mul(r.NegativeWrongModulusDecomposed[i], q.LimbValue(j)))
		}
		r.redNative(t[k])
	}

	u0, u1, v0, v1 := r.residues(t, res)

	return &ReductionContext{
		Result:   res,
		Quotient: Quotient{Long: q},
		T:        t,
		U0:       u0,
		U1:       u1,
		V0:       v0,
		V1:       v1,
	}
}

// residues folds the convolution terms and the claimed result into the two
// residue windows. Soundness requires the low 2*BitLenLimb bits of each
// window to vanish before shifting down to the carries v0, v1; non-zero
// low bits indicate a bug in the bound derivation.
func (r *Rns[W, N]) residues(t []*big.Int, result *Integer) (u0, u1, v0, v1 *big.Int) {
	s := r.LeftShifterR

	u0 = new(big.Int).Mul(s, t[1])
	u0.Add(u0, t[0])
	u0.Sub(u0, result.LimbValue(0))
	u0.Sub(u0, new(big.Int).Mul(s, result.LimbValue(1)))
	r.redNative(u0)

	u1 = new(big.Int).Mul(s, t[3])
	u1.Add(u1, t[2])
	u1.Sub(u1, result.LimbValue(2))
	u1.Sub(u1, new(big.Int).Mul(s, result.LimbValue(3)))
	r.redNative(u1)

	// sanity check
	{
		carried := new(big.Int).Mul(u0, r.RightShifter2R)
		carried.Add(carried, u1)
		r.redNative(carried)
		if new(big.Int).And(u0, r.twoLimbMask).Sign() != 0 {
			panic("rns: low bits of u0 residue are not zero")
		}
		if new(big.Int).And(carried, r.twoLimbMask).Sign() != 0 {
			panic("rns: low bits of u1 residue are not zero")
		}
	}

	v0 = r.redNative(new(big.Int).Mul(u0, r.RightShifter2R))
	v1 = new(big.Int).Add(u1, v0)
	v1.Mul(v1, r.RightShifter2R)
	r.redNative(v1)

	return u0, u1, v0, v1
}

// MakeAux scales BaseAux by the smallest power of two such that every aux
// limb dominates the corresponding bound in maxVals. The result stays
// congruent to zero modulo the wrong modulus, so adding it to a limb-wise
// subtraction prevents underflow without changing the residue.
func (r *Rns[W, N]) MakeAux(maxVals []*big.Int) *Integer {
	maxShift := 0
	base := r.BaseAux.Limbs()

	for i := 0; i < NumberOfLimbs; i++ {
		aux := new(big.Int).Set(base[i])
		shift := 1
		for maxVals[i].Cmp(aux) > 0 {
			aux.Lsh(aux, 1)
			if shift > maxShift {
				maxShift = shift
			}
			shift++
		}
	}

	auxLimbs := make([]*big.Int, NumberOfLimbs)
	for i := range auxLimbs {
		auxLimbs[i] = new(big.Int).Lsh(base[i], uint(maxShift))
	}
	return r.NewFromLimbs(auxLimbs)
}

// CompareToModulus subtracts the integer from wrongModulus-1 with explicit
// borrow propagation. A set borrow out of the most significant limb means
// the integer is not a canonical residue.
func (r *Rns[W, N]) CompareToModulus(a *Integer) *ComparisonResult {
	var borrow [NumberOfLimbs]bool
	limbs := make([]*big.Int, NumberOfLimbs)

	prevBorrow := new(big.Int)
	for i := 0; i < NumberOfLimbs; i++ {
		limb := a.Limb(i).Value()
		modulusLimb := r.WrongModulusMinusOne.Limb(i).Value()

		lhs := new(big.Int).Add(limb, prevBorrow)
		cur := modulusLimb.Cmp(lhs) < 0
		borrow[i] = cur

		resLimb := new(big.Int).Set(modulusLimb)
		if cur {
			resLimb.Add(resLimb, new(big.Int).Lsh(one, r.BitLenLimb))
		}
		resLimb.Sub(resLimb, lhs)
		limbs[i] = resLimb

		prevBorrow = new(big.Int)
		if cur {
			prevBorrow.SetUint64(1)
		}
	}

	return &ComparisonResult{Result: r.NewFromLimbs(limbs), Borrow: borrow}
}

// Invert returns the inverse of a in the wrong field. The second return is
// false if a has no inverse, which for a prime wrong modulus means a is
// congruent to zero.
func (r *Rns[W, N]) Invert(a *Integer) (*Integer, bool) {
	e := new(big.Int).Mod(a.Value(), r.WrongModulus)
	inv := new(big.Int).ModInverse(e, r.WrongModulus)
	if inv == nil {
		return nil, false
	}
	return r.NewFromBig(inv), true
}

// Div returns a/b in the wrong field, or false if b has no inverse.
func (r *Rns[W, N]) Div(a, b *Integer) (*Integer, bool) {
	bInv, ok := r.Invert(b)
	if !ok {
		return nil, false
	}
	res := new(big.Int).Mul(a.Value(), bInv.Value())
	res.Mod(res, r.WrongModulus)
	return r.NewFromBig(res), true
}
