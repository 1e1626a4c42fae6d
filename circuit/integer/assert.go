package integer

import (
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/circuit"
	"github.com/Trapdoor-Tech/halo2wrong/rns"
)

// AssertInField constrains an assigned integer to be a canonical residue,
// strictly less than the wrong modulus. The borrow propagated difference
// (p-1) - a is assigned limb wise; every difference limb is range checked
// and every interior borrow is boolean, while the most significant limb
// admits no borrow at all, which is exactly the strict comparison.
func (c *Chip[W, N]) AssertInField(offset *circuit.Offset, a *circuit.AssignedInteger) error {
	cmp := circuit.MapValue(c.integerValue(a), c.rns.CompareToModulus)

	shift := new(big.Int).Lsh(one, c.rns.BitLenLimb)
	negShift := neg(shift)

	var prevBorrow circuit.AssignedValue
	for i := 0; i < rns.NumberOfLimbs; i++ {
		idx := i
		resWitness := circuit.MapValue(cmp, func(r *rns.ComparisonResult) *big.Int {
			return r.Result.LimbValue(idx)
		})

		bitLen := c.rns.BitLenLimb
		if i == rns.NumberOfLimbs-1 {
			bitLen = uint(c.rns.MaxMostSignificantReducedLimb.BitLen())
		}
		resLimb, err := c.rangeChip.RangeValue(offset, resWitness, bitLen)
		if err != nil {
			return err
		}

		// a_i + r_i - 2^r*b_i + b_{i-1} - p1_i = 0
		borrowTerm := circuit.ZeroTerm()
		borrowWitness := circuit.Unknown[*big.Int]()
		if i < rns.NumberOfLimbs-1 {
			borrowWitness = circuit.MapValue(cmp, func(r *rns.ComparisonResult) *big.Int {
				if r.Borrow[idx] {
					return big.NewInt(1)
				}
				return new(big.Int)
			})
			borrowTerm = circuit.UnassignedTerm(borrowWitness, negShift)
		}
		prevTerm := circuit.ZeroTerm()
		if i > 0 {
			prevTerm = circuit.AssignedTerm(prevBorrow, one)
		}
		constant := neg(c.rns.WrongModulusMinusOne.LimbValue(i))

		cells, err := c.gate.Combine(offset, [4]circuit.Term{
			circuit.AssignedTerm(a.Limb(i), one),
			circuit.AssignedTerm(resLimb, one),
			borrowTerm,
			prevTerm,
		}, constant, circuit.SingleLinerAdd())
		if err != nil {
			return err
		}

		if i < rns.NumberOfLimbs-1 {
			borrow := circuit.NewAssignedValue(borrowWitness, cells[2])
			if err := c.assertBit(offset, borrow); err != nil {
				return err
			}
			prevBorrow = borrow
		}
	}

	return nil
}
