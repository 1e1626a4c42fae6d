package integer

import (
	"fmt"
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/circuit"
	"github.com/Trapdoor-Tech/halo2wrong/rns"
)

func limbWitness(value circuit.Value[*rns.Integer], idx int) circuit.Value[*big.Int] {
	return circuit.MapValue(value, func(a *rns.Integer) *big.Int {
		return a.LimbValue(idx)
	})
}

func (c *Chip[W, N]) nativeWitness(value circuit.Value[*rns.Integer]) circuit.Value[*big.Int] {
	return circuit.MapValue(value, func(a *rns.Integer) *big.Int {
		return c.rns.Native(a)
	})
}

// wireNative constrains the native field cross value to equal the limb
// composition and returns its assigned handle. The limbs go into one row
// whose identity rotates into the native value placed in the next row.
func (c *Chip[W, N]) wireNative(offset *circuit.Offset, limbs [rns.NumberOfLimbs]circuit.AssignedLimb, native circuit.Value[*big.Int]) (circuit.AssignedValue, error) {
	_, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(limbs[0], one),
		circuit.AssignedTerm(limbs[1], c.rns.LeftShifterR),
		circuit.AssignedTerm(limbs[2], c.rns.LeftShifter2R),
		circuit.AssignedTerm(limbs[3], c.rns.LeftShifter3R),
	}, zero, circuit.CombineToNextAdd(minusOne))
	if err != nil {
		return circuit.AssignedValue{}, err
	}
	cells, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
		circuit.UnassignedTerm(native, zero),
	}, zero, circuit.SingleLinerAdd())
	if err != nil {
		return circuit.AssignedValue{}, err
	}
	return circuit.NewAssignedValue(native, cells[3]), nil
}

// AssignInteger places an integer witness without range constraints. The
// limbs carry the unreduced bound, callers must reduce before using the
// value as a multiplication operand.
func (c *Chip[W, N]) AssignInteger(offset *circuit.Offset, value circuit.Value[*rns.Integer]) (*circuit.AssignedInteger, error) {
	cells, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.UnassignedTerm(limbWitness(value, 0), one),
		circuit.UnassignedTerm(limbWitness(value, 1), c.rns.LeftShifterR),
		circuit.UnassignedTerm(limbWitness(value, 2), c.rns.LeftShifter2R),
		circuit.UnassignedTerm(limbWitness(value, 3), c.rns.LeftShifter3R),
	}, zero, circuit.CombineToNextAdd(minusOne))
	if err != nil {
		return nil, err
	}

	native := c.nativeWitness(value)
	nativeCells, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
		circuit.UnassignedTerm(native, zero),
	}, zero, circuit.SingleLinerAdd())
	if err != nil {
		return nil, err
	}

	var limbs [rns.NumberOfLimbs]circuit.AssignedLimb
	for i := range limbs {
		limbs[i] = circuit.NewAssignedLimb(limbWitness(value, i), cells[i], c.rns.MaxUnreducedLimb)
	}
	return circuit.NewAssignedInteger(limbs, circuit.NewAssignedValue(native, nativeCells[3])), nil
}

// RangeAssignInteger places an integer witness with per limb range checks.
// Interior limbs are bounded by the limb width, the most significant limb
// by msbBitLen bits, and the native cross value is wired to the limb
// composition.
func (c *Chip[W, N]) RangeAssignInteger(offset *circuit.Offset, value circuit.Value[*rns.Integer], msbBitLen uint) (*circuit.AssignedInteger, error) {
	if msbBitLen > c.rns.BitLenLimb {
		return nil, fmt.Errorf("most significant limb bound %d exceeds limb width %d", msbBitLen, c.rns.BitLenLimb)
	}

	var limbs [rns.NumberOfLimbs]circuit.AssignedLimb
	for i := 0; i < rns.NumberOfLimbs-1; i++ {
		assigned, err := c.rangeChip.RangeValue(offset, limbWitness(value, i), c.rns.BitLenLimb)
		if err != nil {
			return nil, err
		}
		limbs[i] = circuit.NewAssignedLimb(assigned.Value(), assigned.Cell(), c.rns.MaxReducedLimb)
	}

	msbMax := new(big.Int).Lsh(one, msbBitLen)
	msbMax.Sub(msbMax, one)
	assigned, err := c.rangeChip.RangeValue(offset, limbWitness(value, rns.NumberOfLimbs-1), msbBitLen)
	if err != nil {
		return nil, err
	}
	limbs[rns.NumberOfLimbs-1] = circuit.NewAssignedLimb(assigned.Value(), assigned.Cell(), msbMax)

	native, err := c.wireNative(offset, limbs, c.nativeWitness(value))
	if err != nil {
		return nil, err
	}
	return circuit.NewAssignedInteger(limbs, native), nil
}
