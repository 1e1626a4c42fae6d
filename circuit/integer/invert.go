package integer

import (
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/circuit"
	"github.com/Trapdoor-Tech/halo2wrong/rns"
)

// Invert certifies the inverse of a in the wrong field without circuit
// branching. Off circuit the candidate is the true inverse, or the unit
// element when a has none. On circuit the product a*candidate is
// constrained to be either exactly one or exactly zero, and in the zero
// case the candidate itself is pinned to one.
//
// The returned condition is 0 when a was invertible and the result is its
// inverse, 1 when a was zero and the result is the unit element. It is a
// constrained boolean usable in further combinations.
func (c *Chip[W, N]) Invert(offset *circuit.Offset, a *circuit.AssignedInteger) (*circuit.AssignedInteger, circuit.AssignedCondition, error) {
	invOrOne := circuit.MapValue(c.integerValue(a), func(ai *rns.Integer) *rns.Integer {
		if inv, ok := c.rns.Invert(ai); ok {
			return inv
		}
		return c.rns.One()
	})

	invAssigned, err := c.RangeAssignInteger(offset, invOrOne, uint(c.rns.MaxMostSignificantReducedLimb.BitLen()))
	if err != nil {
		return nil, circuit.AssignedCondition{}, err
	}

	aMulInv, err := c.Mul(offset, a, invAssigned)
	if err != nil {
		return nil, circuit.AssignedCondition{}, err
	}

	// the product is strictly below the wrong modulus, so it equals one or
	// zero iff limbs 1..4 vanish and limb 0 is boolean
	for i := 1; i < rns.NumberOfLimbs; i++ {
		if err := c.assertZero(offset, aMulInv.Limb(i)); err != nil {
			return nil, circuit.AssignedCondition{}, err
		}
	}
	if err := c.assertBit(offset, aMulInv.Limb(0)); err != nil {
		return nil, circuit.AssignedCondition{}, err
	}

	// if the product is zero the candidate must be one:
	// (x - 1) * inv_i = 0 for i in 1..4 and (x - 1) * (inv_0 - 1) = 0
	x := aMulInv.Limb(0)
	for i := 1; i < rns.NumberOfLimbs; i++ {
		_, err := c.gate.Combine(offset, [4]circuit.Term{
			circuit.AssignedTerm(x, zero),
			circuit.AssignedTerm(invAssigned.Limb(i), minusOne),
			circuit.ZeroTerm(),
			circuit.ZeroTerm(),
		}, zero, circuit.SingleLinerMul())
		if err != nil {
			return nil, circuit.AssignedCondition{}, err
		}
	}
	_, err = c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(x, minusOne),
		circuit.AssignedTerm(invAssigned.Limb(0), minusOne),
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
	}, one, circuit.SingleLinerMul())
	if err != nil {
		return nil, circuit.AssignedCondition{}, err
	}

	// cond = 1 - x, enforced by x*cond + x + cond - 1 = 0
	condWitness := circuit.MapValue(x.Value(), func(v *big.Int) *big.Int {
		return c.redNative(new(big.Int).Sub(one, v))
	})
	cells, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(x, one),
		circuit.UnassignedTerm(condWitness, one),
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
	}, minusOne, circuit.SingleLinerMul())
	if err != nil {
		return nil, circuit.AssignedCondition{}, err
	}

	return invAssigned, circuit.NewAssignedCondition(condWitness, cells[1]), nil
}

// Div assigns a/b in the wrong field. The condition is 1 when b had no
// inverse; in that case the result is a itself, as the divisor was forced
// to the unit element. Callers branch logically on the condition.
func (c *Chip[W, N]) Div(offset *circuit.Offset, a, b *circuit.AssignedInteger) (*circuit.AssignedInteger, circuit.AssignedCondition, error) {
	bInv, cond, err := c.Invert(offset, b)
	if err != nil {
		return nil, circuit.AssignedCondition{}, err
	}
	res, err := c.Mul(offset, a, bInv)
	if err != nil {
		return nil, circuit.AssignedCondition{}, err
	}
	return res, cond, nil
}
