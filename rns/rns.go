package rns

import (
	"fmt"
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/logger"
)

var one = big.NewInt(1)

// Rns is the immutable parameter bundle of one emulation pair. It is
// computed once per circuit configuration by [Construct] and holds every
// bound, shifter and overflow length the rest of the engine needs.
//
// The type parameters pin the emulated ("wrong") field W and the native
// proving field N.
type Rns[W FieldParams, N FieldParams] struct {
	BitLenLimb   uint
	BitLenLookup uint

	WrongModulus  *big.Int
	NativeModulus *big.Int
	// BinaryModulus is 2^(BitLenLimb*NumberOfLimbs).
	BinaryModulus *big.Int
	// CRTModulus is BinaryModulus*NativeModulus. Equality checked both
	// modulo the native field and the binary modulus holds over the
	// integers for operands bounded below this product.
	CRTModulus *big.Int

	// Shifters between limb window positions and native field scalars.
	RightShifterR  *big.Int
	RightShifter2R *big.Int
	LeftShifterR   *big.Int
	LeftShifter2R  *big.Int
	LeftShifter3R  *big.Int

	// BaseAux is congruent to zero modulo the wrong modulus and every limb
	// of it dominates the maximum limb value that can ever be subtracted
	// from it. See MakeAux.
	BaseAux *Integer

	// NegativeWrongModulusDecomposed is BinaryModulus-WrongModulus in
	// limbs. Adding quotient*negative modulus replaces subtracting
	// quotient*modulus so intermediate values never go negative.
	NegativeWrongModulusDecomposed []*big.Int
	WrongModulusDecomposed         []*big.Int
	WrongModulusMinusOne           *Integer
	WrongModulusInNativeModulus    *big.Int

	MaxReducedLimb           *big.Int
	MaxUnreducedLimb         *big.Int
	MaxRemainder             *big.Int
	MaxOperand               *big.Int
	MaxMulQuotient           *big.Int
	MaxReducibleValue        *big.Int
	MaxWithMaxUnreducedLimbs *big.Int
	MaxDenseValue            *big.Int

	MaxMostSignificantReducedLimb     *big.Int
	MaxMostSignificantOperandLimb     *big.Int
	MaxMostSignificantUnreducedLimb   *big.Int
	MaxMostSignificantMulQuotientLimb *big.Int

	// Overflow lengths: how many bits beyond BitLenLimb each residue carry
	// value may occupy. Handed to the range check collaborator so lookup
	// tables are sized exactly.
	MulV0Overflow uint
	MulV1Overflow uint
	RedV0Overflow uint
	RedV1Overflow uint

	twoLimbMask *big.Int
}

// Construct derives the full parameter bundle for limbs of bitLenLimb bits
// over the (W, N) emulation pair. It panics if any soundness inequality
// fails; such a failure is a configuration bug, not a data error.
func Construct[W FieldParams, N FieldParams](bitLenLimb uint) *Rns[W, N] {
	var w W
	var n N

	wrongModulus := new(big.Int).Set(w.Modulus())
	nativeModulus := new(big.Int).Set(n.Modulus())

	binaryModulusBitLen := bitLenLimb * NumberOfLimbs
	binaryModulus := new(big.Int).Lsh(one, binaryModulusBitLen)

	if binaryModulus.Cmp(wrongModulus) <= 0 {
		panic("rns: binary modulus must exceed wrong modulus")
	}
	if binaryModulus.Cmp(nativeModulus) <= 0 {
		panic("rns: binary modulus must exceed native modulus")
	}
	crtModulus := new(big.Int).Mul(binaryModulus, nativeModulus)
	if crtModulus.Cmp(new(big.Int).Mul(wrongModulus, wrongModulus)) <= 0 {
		panic("rns: crt modulus must exceed square of wrong modulus")
	}

	leftShifterR := shiftLeftFe(bitLenLimb, nativeModulus)
	leftShifter2R := shiftLeftFe(2*bitLenLimb, nativeModulus)
	leftShifter3R := shiftLeftFe(3*bitLenLimb, nativeModulus)
	rightShifterR := new(big.Int).ModInverse(leftShifterR, nativeModulus)
	rightShifter2R := new(big.Int).ModInverse(leftShifter2R, nativeModulus)

	wrongModulusInNativeModulus := new(big.Int).Mod(wrongModulus, nativeModulus)

	negativeWrongModulusDecomposed := mustDecompose(new(big.Int).Sub(binaryModulus, wrongModulus), NumberOfLimbs, bitLenLimb)
	wrongModulusDecomposed := mustDecompose(wrongModulus, NumberOfLimbs, bitLenLimb)
	wrongModulusMinusOne, err := IntegerFromBig(new(big.Int).Sub(wrongModulus, one), bitLenLimb)
	if err != nil {
		panic(fmt.Sprintf("rns: %v", err))
	}

	twoLimbMask := new(big.Int).Lsh(one, 2*bitLenLimb)
	twoLimbMask.Sub(twoLimbMask, one)

	// n * T > a' * a'
	preMaxOperandBitLen := uint(crtModulus.BitLen())/2 - 1
	preMaxOperand := maxValueOfBits(preMaxOperandBitLen)

	// n * T > q * w + r
	maxRemainder := maxValueOfBits(uint(wrongModulus.BitLen()))

	preMaxMulQuotient := new(big.Int).Sub(crtModulus, maxRemainder)
	preMaxMulQuotient.Div(preMaxMulQuotient, wrongModulus)
	maxMulQuotient := maxValueOfBits(uint(preMaxMulQuotient.BitLen()) - 1)

	maxOperandBound := new(big.Int).Mul(maxMulQuotient, wrongModulus)
	maxOperandBound.Add(maxOperandBound, maxRemainder)
	maxOperandBitLen := uint(maxOperandBound.BitLen())/2 - 1
	maxOperand := maxValueOfBits(maxOperandBitLen)

	maxReducedLimb := maxValueOfBits(bitLenLimb)
	// conservative, the actual bound is higher
	maxUnreducedLimb := maxValueOfBits(bitLenLimb + bitLenLimb/2)

	if crtModulus.Cmp(new(big.Int).Mul(preMaxOperand, preMaxOperand)) <= 0 {
		panic("rns: crt modulus must exceed square of pre max operand")
	}
	if preMaxOperand.Cmp(wrongModulus) <= 0 {
		panic("rns: pre max operand must exceed wrong modulus")
	}
	if crtModulus.Cmp(maxOperandBound) <= 0 {
		panic("rns: crt modulus must exceed q*w+r bound")
	}
	if maxMulQuotient.Cmp(wrongModulus) <= 0 {
		panic("rns: max mul quotient must exceed wrong modulus")
	}
	if maxOperand.Cmp(preMaxOperand) > 0 {
		panic("rns: max operand exceeds pre max operand")
	}
	if maxOperand.Cmp(wrongModulus) <= 0 {
		panic("rns: max operand must exceed wrong modulus")
	}
	if crtModulus.Cmp(new(big.Int).Mul(maxOperand, maxOperand)) <= 0 {
		panic("rns: crt modulus must exceed square of max operand")
	}
	if maxOperandBound.Cmp(new(big.Int).Mul(maxOperand, maxOperand)) <= 0 {
		panic("rns: q*w+r bound must exceed square of max operand")
	}

	shift := (NumberOfLimbs - 1) * int(bitLenLimb)
	maxMostSignificantReducedLimb := new(big.Int).Rsh(maxRemainder, uint(shift))
	maxMostSignificantOperandLimb := new(big.Int).Rsh(maxOperand, uint(shift))
	// conservative, the actual bound is higher
	maxMostSignificantUnreducedLimb := new(big.Int).Set(maxUnreducedLimb)
	maxMostSignificantMulQuotientLimb := new(big.Int).Rsh(maxMulQuotient, uint(shift))

	if uint(maxMostSignificantReducedLimb.BitLen()) >= bitLenLimb {
		panic("rns: most significant reduced limb overflows limb width")
	}
	if uint(maxMostSignificantOperandLimb.BitLen()) >= bitLenLimb {
		panic("rns: most significant operand limb overflows limb width")
	}
	if uint(maxMostSignificantMulQuotientLimb.BitLen()) > bitLenLimb {
		panic("rns: most significant mul quotient limb overflows limb width")
	}

	// reduction quotient is limited to a single limb
	maxReductionQuotient := new(big.Int).Set(maxReducedLimb)
	maxReducibleValue := new(big.Int).Mul(maxReductionQuotient, wrongModulus)
	maxReducibleValue.Add(maxReducibleValue, maxRemainder)
	maxWithMaxUnreducedLimbs := Compose(repeatedLimb(maxUnreducedLimb), bitLenLimb)
	if maxReducibleValue.Cmp(maxWithMaxUnreducedLimbs) <= 0 {
		panic("rns: worst case unreduced value is not reducible in a single limb quotient")
	}
	maxDenseValue := Compose(repeatedLimb(maxReducedLimb), bitLenLimb)

	// emulate a worst case multiplication to size the residue carries
	mulV0Max, mulV1Max := func() (*big.Int, *big.Int) {
		a := []*big.Int{maxReducedLimb, maxReducedLimb, maxReducedLimb, maxMostSignificantOperandLimb}
		q := []*big.Int{maxReducedLimb, maxReducedLimb, maxReducedLimb, maxMostSignificantMulQuotientLimb}
		p := negativeWrongModulusDecomposed

		t := make([]*big.Int, 2*NumberOfLimbs-1)
		for i := range t {
			t[i] = new(big.Int)
		}
		for i := 0; i < NumberOfLimbs; i++ {
			for j := 0; j < NumberOfLimbs; j++ {
				t[i+j].Add(t[i+j], new(big.Int).Mul(a[i], a[j]))
				t[i+j].Add(t[i+j], new(big.Int).Mul(p[i], q[j]))
			}
		}
		return windowCarries(t, bitLenLimb)
	}()
	mulV0Overflow := carryOverflow(mulV0Max, bitLenLimb)
	mulV1Overflow := carryOverflow(mulV1Max, bitLenLimb)

	// emulate a worst case reduction to size the residue carries
	redV0Max, redV1Max := func() (*big.Int, *big.Int) {
		a := repeatedLimb(maxUnreducedLimb)
		aValue := Compose(a, bitLenLimb)
		qMax := new(big.Int).Div(aValue, wrongModulus)
		if qMax.Cmp(new(big.Int).Lsh(one, bitLenLimb)) >= 0 {
			panic("rns: worst case reduction quotient exceeds a single limb")
		}

		t := make([]*big.Int, NumberOfLimbs)
		for i := range t {
			t[i] = new(big.Int).Mul(maxReducedLimb, negativeWrongModulusDecomposed[i])
			t[i].Add(t[i], a[i])
		}
		return windowCarries(t, bitLenLimb)
	}()
	redV0Overflow := carryOverflow(redV0Max, bitLenLimb)
	redV1Overflow := carryOverflow(redV1Max, bitLenLimb)

	bitLenLookup := bitLenLimb / NumberOfLookupLimbs
	if bitLenLookup*NumberOfLookupLimbs != bitLenLimb {
		panic("rns: limb width must be divisible by the number of lookup limbs")
	}

	baseAux := calculateBaseAux(bitLenLimb, wrongModulus)
	if new(big.Int).Mod(baseAux.Value(), wrongModulus).Sign() != 0 {
		panic("rns: base aux is not a multiple of the wrong modulus")
	}
	if baseAux.Value().Cmp(maxRemainder) <= 0 {
		panic("rns: base aux must exceed max remainder")
	}
	for i := 0; i < NumberOfLimbs; i++ {
		target := maxReducedLimb
		if i == NumberOfLimbs-1 {
			target = maxMostSignificantReducedLimb
		}
		if baseAux.Limb(i).Value().Cmp(target) < 0 {
			panic("rns: base aux limb does not dominate the reduced limb bound")
		}
	}

	rns := &Rns[W, N]{
		BitLenLimb:   bitLenLimb,
		BitLenLookup: bitLenLookup,

		WrongModulus:  wrongModulus,
		NativeModulus: nativeModulus,
		BinaryModulus: binaryModulus,
		CRTModulus:    crtModulus,

		RightShifterR:  rightShifterR,
		RightShifter2R: rightShifter2R,
		LeftShifterR:   leftShifterR,
		LeftShifter2R:  leftShifter2R,
		LeftShifter3R:  leftShifter3R,

		BaseAux: baseAux,

		NegativeWrongModulusDecomposed: negativeWrongModulusDecomposed,
		WrongModulusDecomposed:         wrongModulusDecomposed,
		WrongModulusMinusOne:           wrongModulusMinusOne,
		WrongModulusInNativeModulus:    wrongModulusInNativeModulus,

		MaxReducedLimb:           maxReducedLimb,
		MaxUnreducedLimb:         maxUnreducedLimb,
		MaxRemainder:             maxRemainder,
		MaxOperand:               maxOperand,
		MaxMulQuotient:           maxMulQuotient,
		MaxReducibleValue:        maxReducibleValue,
		MaxWithMaxUnreducedLimbs: maxWithMaxUnreducedLimbs,
		MaxDenseValue:            maxDenseValue,

		MaxMostSignificantReducedLimb:     maxMostSignificantReducedLimb,
		MaxMostSignificantOperandLimb:     maxMostSignificantOperandLimb,
		MaxMostSignificantUnreducedLimb:   maxMostSignificantUnreducedLimb,
		MaxMostSignificantMulQuotientLimb: maxMostSignificantMulQuotientLimb,

		MulV0Overflow: mulV0Overflow,
		MulV1Overflow: mulV1Overflow,
		RedV0Overflow: redV0Overflow,
		RedV1Overflow: redV1Overflow,

		twoLimbMask: twoLimbMask,
	}

	// certify the derived bounds: reducing the maximal unreduced value must
	// keep the quotient inside a single limb
	worst := rns.NewFromLimbs(repeatedLimb(maxUnreducedLimb))
	ctx := rns.Reduce(worst)
	if ctx.Quotient.Short == nil {
		panic("rns: short quotient expected")
	}
	if ctx.Quotient.Short.Cmp(maxReducedLimb) >= 0 {
		panic("rns: self test reduction quotient exceeds a single limb")
	}

	log := logger.Logger()
	log.Debug().
		Uint("bitLenLimb", bitLenLimb).
		Uint("mulV0Overflow", mulV0Overflow).
		Uint("mulV1Overflow", mulV1Overflow).
		Uint("redV0Overflow", redV0Overflow).
		Uint("redV1Overflow", redV1Overflow).
		Int("maxOperandBits", maxOperand.BitLen()).
		Int("maxMulQuotientBits", maxMulQuotient.BitLen()).
		Msg("rns parameters derived")

	return rns
}

// calculateBaseAux starts from 2*wrongModulus in limbs and, from the most
// significant limb down, borrows one unit from the higher limb into a full
// 2^bitLenLimb of the lower limb whenever the lower limb is too small to
// dominate a subtraction. The result stays congruent to zero modulo the
// wrong modulus.
func calculateBaseAux(bitLenLimb uint, wrongModulus *big.Int) *Integer {
	r := new(big.Int).Lsh(one, bitLenLimb)
	decomposed := mustDecompose(wrongModulus, NumberOfLimbs, bitLenLimb)

	// base aux = 2 * w
	baseAux := make([]*big.Int, NumberOfLimbs)
	for i := range baseAux {
		baseAux[i] = new(big.Int).Lsh(decomposed[i], 1)
	}

	for i := 0; i < NumberOfLimbs-1; i++ {
		hidx := NumberOfLimbs - i - 1
		lidx := hidx - 1
		if uint(baseAux[lidx].BitLen()) < bitLenLimb+1 {
			baseAux[hidx].Sub(baseAux[hidx], one)
			baseAux[lidx].Add(baseAux[lidx], r)
		}
	}

	var limbs [NumberOfLimbs]Limb
	for i := range limbs {
		limbs[i] = Limb{fe: baseAux[i]}
	}
	return NewInteger(limbs, bitLenLimb)
}

// New builds an integer from a wrong field element value.
func (r *Rns[W, N]) New(fe *big.Int) *Integer {
	a, err := IntegerFromBig(fe, r.BitLenLimb)
	if err != nil {
		panic(fmt.Sprintf("rns: %v", err))
	}
	return a
}

// Zero returns the zero integer.
func (r *Rns[W, N]) Zero() *Integer {
	return r.New(new(big.Int))
}

// One returns the unit integer.
func (r *Rns[W, N]) One() *Integer {
	return r.New(one)
}

// NewFromLimbs builds an integer directly from native field elements. The
// limbs are not required to be reduced.
func (r *Rns[W, N]) NewFromLimbs(limbs []*big.Int) *Integer {
	if len(limbs) != NumberOfLimbs {
		panic(fmt.Sprintf("rns: expected %d limbs, got %d", NumberOfLimbs, len(limbs)))
	}
	var ls [NumberOfLimbs]Limb
	for i := range ls {
		ls[i] = NewLimb(limbs[i])
	}
	return NewInteger(ls, r.BitLenLimb)
}

// NewFromBig decomposes e. It panics if e exceeds the densest value
// representable with reduced limbs.
func (r *Rns[W, N]) NewFromBig(e *big.Int) *Integer {
	if e.Cmp(r.MaxDenseValue) > 0 {
		panic("rns: value exceeds max dense value")
	}
	return r.New(e)
}

// Native returns the integer folded into the native field, the cross term
// of the CRT check.
func (r *Rns[W, N]) Native(a *Integer) *big.Int {
	return new(big.Int).Mod(a.Value(), r.NativeModulus)
}

// Scale multiplies every limb by the native field element k.
func (r *Rns[W, N]) Scale(a *Integer, k *big.Int) *Integer {
	limbs := make([]*big.Int, NumberOfLimbs)
	for i := range limbs {
		limbs[i] = r.redNative(new(big.Int).Mul(a.LimbValue(i), k))
	}
	return r.NewFromLimbs(limbs)
}

// OverflowLengths returns the exact bit sizes the range check collaborator
// must support beyond whole lookup windows: the four residue carry
// overflows and the fractional window of each most significant limb bound.
func (r *Rns[W, N]) OverflowLengths() []uint {
	return []uint{
		r.MulV0Overflow,
		r.MulV1Overflow,
		r.RedV0Overflow,
		r.RedV1Overflow,
		uint(r.MaxMostSignificantMulQuotientLimb.BitLen()) % r.BitLenLookup,
		uint(r.MaxMostSignificantOperandLimb.BitLen()) % r.BitLenLookup,
		uint(r.MaxMostSignificantReducedLimb.BitLen()) % r.BitLenLookup,
	}
}

// redNative reduces e into the native field.
func (r *Rns[W, N]) redNative(e *big.Int) *big.Int {
	return e.Mod(e, r.NativeModulus)
}

func shiftLeftFe(bits uint, nativeModulus *big.Int) *big.Int {
	e := new(big.Int).Lsh(one, bits)
	return e.Mod(e, nativeModulus)
}

func maxValueOfBits(bits uint) *big.Int {
	e := new(big.Int).Lsh(one, bits)
	return e.Sub(e, one)
}

func repeatedLimb(limb *big.Int) []*big.Int {
	limbs := make([]*big.Int, NumberOfLimbs)
	for i := range limbs {
		limbs[i] = new(big.Int).Set(limb)
	}
	return limbs
}

// windowCarries folds the first four convolution windows into the two
// residue windows and returns the carries shifted down by two limbs.
func windowCarries(t []*big.Int, bitLenLimb uint) (*big.Int, *big.Int) {
	u0 := new(big.Int).Lsh(t[1], bitLenLimb)
	u0.Add(u0, t[0])
	u1 := new(big.Int).Lsh(t[3], bitLenLimb)
	u1.Add(u1, t[2])
	u1.Add(u1, new(big.Int).Rsh(u0, 2*bitLenLimb))

	v0 := new(big.Int).Rsh(u0, 2*bitLenLimb)
	v1 := new(big.Int).Rsh(u1, 2*bitLenLimb)
	return v0, v1
}

func carryOverflow(vMax *big.Int, bitLenLimb uint) uint {
	if uint(vMax.BitLen()) < bitLenLimb {
		panic("rns: residue carry narrower than a limb")
	}
	return uint(vMax.BitLen()) - bitLenLimb
}
