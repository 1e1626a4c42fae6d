package rns

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// NumberOfLimbs is the fixed limb count of the engine. The bound
	// derivation and the two-window residue check are written for exactly
	// four limbs.
	NumberOfLimbs = 4

	// NumberOfLookupLimbs is the number of lookup windows a single limb is
	// split into by the range check collaborator.
	NumberOfLookupLimbs = 4
)

// Limb is a single native field element interpreted as one unsigned
// bitLenLimb-bit window of an integer. Limbs are immutable once
// constructed.
type Limb struct {
	fe *big.Int
}

// NewLimb wraps a native field element as a limb. The value is copied.
func NewLimb(fe *big.Int) Limb {
	return Limb{fe: new(big.Int).Set(fe)}
}

// Fe returns the limb as a native field element.
func (l Limb) Fe() *big.Int {
	return new(big.Int).Set(l.fe)
}

// Value returns the limb reinterpreted as an unsigned integer.
func (l Limb) Value() *big.Int {
	return new(big.Int).Set(l.fe)
}

// Integer is an ordered, fixed length sequence of limbs representing one
// arbitrary precision unsigned value
//
//	Σ limb[i] * 2^(i*bitLenLimb)
//
// An Integer owns its limbs but not the parameter set it was built from.
type Integer struct {
	limbs      [NumberOfLimbs]Limb
	bitLenLimb uint
}

// NewInteger builds an integer from its limbs.
func NewInteger(limbs [NumberOfLimbs]Limb, bitLenLimb uint) *Integer {
	return &Integer{limbs: limbs, bitLenLimb: bitLenLimb}
}

// IntegerFromBig decomposes e into limbs. It errors if e does not fit the
// 4*bitLenLimb bit window.
func IntegerFromBig(e *big.Int, bitLenLimb uint) (*Integer, error) {
	decomposed, err := Decompose(e, NumberOfLimbs, bitLenLimb)
	if err != nil {
		return nil, err
	}
	a := &Integer{bitLenLimb: bitLenLimb}
	for i := range a.limbs {
		a.limbs[i] = Limb{fe: decomposed[i]}
	}
	return a, nil
}

// IntegerFromBytesLE builds an integer from a little-endian byte slice.
func IntegerFromBytesLE(b []byte, bitLenLimb uint) (*Integer, error) {
	e := new(big.Int)
	// big.Int.SetBytes is big-endian
	rev := make([]byte, len(b))
	for i := range b {
		rev[len(b)-1-i] = b[i]
	}
	e.SetBytes(rev)
	return IntegerFromBig(e, bitLenLimb)
}

// Value composes the limbs back into the represented integer.
func (a *Integer) Value() *big.Int {
	limbs := make([]*big.Int, NumberOfLimbs)
	for i := range limbs {
		limbs[i] = a.limbs[i].Value()
	}
	return Compose(limbs, a.bitLenLimb)
}

// Limb returns the idx-th limb.
func (a *Integer) Limb(idx int) Limb {
	return a.limbs[idx]
}

// LimbValue returns the idx-th limb as a native field element.
func (a *Integer) LimbValue(idx int) *big.Int {
	return a.limbs[idx].Fe()
}

// Limbs returns all limbs as native field elements.
func (a *Integer) Limbs() []*big.Int {
	limbs := make([]*big.Int, NumberOfLimbs)
	for i := range limbs {
		limbs[i] = a.limbs[i].Fe()
	}
	return limbs
}

// BitLenLimb returns the limb bit width the integer was decomposed with.
func (a *Integer) BitLenLimb() uint {
	return a.bitLenLimb
}

// Equal reports whether two integers represent the same value.
func (a *Integer) Equal(other *Integer) bool {
	return a.Value().Cmp(other.Value()) == 0
}

func (a *Integer) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "value: %s", a.Value().Text(16))
	for i := range a.limbs {
		fmt.Fprintf(&sb, "\nlimb %d: %s", i, a.limbs[i].Value().Text(16))
	}
	return sb.String()
}
