package circuit

import (
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/rns"
)

// Cell addresses one value placed in the constraint table.
type Cell struct {
	Row  uint
	Wire int
}

// Assigned is a witness value that has been placed in the constraint
// table and can be referred to by further combinations.
type Assigned interface {
	Value() Value[*big.Int]
	Cell() Cell
}

// AssignedValue is a plain assigned native field element.
type AssignedValue struct {
	value Value[*big.Int]
	cell  Cell
}

// NewAssignedValue binds a witness value to its cell.
func NewAssignedValue(value Value[*big.Int], cell Cell) AssignedValue {
	return AssignedValue{value: value, cell: cell}
}

func (a AssignedValue) Value() Value[*big.Int] { return a.value }
func (a AssignedValue) Cell() Cell             { return a.cell }

// AssignedCondition is an assigned value constrained to be boolean.
type AssignedCondition struct {
	AssignedValue
}

// NewAssignedCondition binds a boolean witness to its cell.
func NewAssignedCondition(value Value[*big.Int], cell Cell) AssignedCondition {
	return AssignedCondition{NewAssignedValue(value, cell)}
}

// AssignedLimb is an assigned limb together with the maximum value it may
// take in its context; the bound drives auxiliary construction for
// underflow free subtraction.
type AssignedLimb struct {
	AssignedValue
	maxVal *big.Int
}

// NewAssignedLimb binds a limb witness to its cell under the given bound.
func NewAssignedLimb(value Value[*big.Int], cell Cell, maxVal *big.Int) AssignedLimb {
	return AssignedLimb{AssignedValue: NewAssignedValue(value, cell), maxVal: new(big.Int).Set(maxVal)}
}

// MaxVal returns the declared bound of the limb.
func (l AssignedLimb) MaxVal() *big.Int {
	return new(big.Int).Set(l.maxVal)
}

// AssignedInteger is a foreign field element placed in the constraint
// table: four assigned limbs plus the assigned native field cross value of
// the CRT check.
type AssignedInteger struct {
	limbs  [rns.NumberOfLimbs]AssignedLimb
	native AssignedValue
}

// NewAssignedInteger builds an assigned integer from its parts.
func NewAssignedInteger(limbs [rns.NumberOfLimbs]AssignedLimb, native AssignedValue) *AssignedInteger {
	return &AssignedInteger{limbs: limbs, native: native}
}

// Limb returns the idx-th assigned limb.
func (a *AssignedInteger) Limb(idx int) AssignedLimb {
	return a.limbs[idx]
}

// Native returns the assigned native field cross value.
func (a *AssignedInteger) Native() AssignedValue {
	return a.native
}

// MaxVals returns the declared per-limb bounds.
func (a *AssignedInteger) MaxVals() []*big.Int {
	maxVals := make([]*big.Int, rns.NumberOfLimbs)
	for i := range maxVals {
		maxVals[i] = a.limbs[i].MaxVal()
	}
	return maxVals
}

// Integer recomposes the witness into an integer, or unknown if any limb
// witness is absent.
func (a *AssignedInteger) Integer(bitLenLimb uint) Value[*rns.Integer] {
	var limbs [rns.NumberOfLimbs]rns.Limb
	for i := range a.limbs {
		v, ok := a.limbs[i].Value().Get()
		if !ok {
			return Unknown[*rns.Integer]()
		}
		limbs[i] = rns.NewLimb(v)
	}
	return Known(rns.NewInteger(limbs, bitLenLimb))
}
