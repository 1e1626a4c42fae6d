package integer

import (
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/circuit"
	"github.com/Trapdoor-Tech/halo2wrong/rns"
)

// Add assigns the limb wise sum of a and b. Limb bounds accumulate; the
// caller reduces once the bounds approach the unreduced limit.
func (c *Chip[W, N]) Add(offset *circuit.Offset, a, b *circuit.AssignedInteger) (*circuit.AssignedInteger, error) {
	var limbs [rns.NumberOfLimbs]circuit.AssignedLimb
	for i := range limbs {
		aLimb := a.Limb(i)
		bLimb := b.Limb(i)
		witness := circuit.MapValue2(aLimb.Value(), bLimb.Value(), func(x, y *big.Int) *big.Int {
			return c.redNative(new(big.Int).Add(x, y))
		})
		cells, err := c.gate.Combine(offset, [4]circuit.Term{
			circuit.AssignedTerm(aLimb, one),
			circuit.AssignedTerm(bLimb, one),
			circuit.UnassignedTerm(witness, minusOne),
			circuit.ZeroTerm(),
		}, zero, circuit.SingleLinerAdd())
		if err != nil {
			return nil, err
		}
		maxVal := new(big.Int).Add(aLimb.MaxVal(), bLimb.MaxVal())
		limbs[i] = circuit.NewAssignedLimb(witness, cells[2], maxVal)
	}

	nativeWitness := circuit.MapValue2(a.Native().Value(), b.Native().Value(), func(x, y *big.Int) *big.Int {
		return c.redNative(new(big.Int).Add(x, y))
	})
	cells, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(a.Native(), one),
		circuit.AssignedTerm(b.Native(), one),
		circuit.UnassignedTerm(nativeWitness, minusOne),
		circuit.ZeroTerm(),
	}, zero, circuit.SingleLinerAdd())
	if err != nil {
		return nil, err
	}

	return circuit.NewAssignedInteger(limbs, circuit.NewAssignedValue(nativeWitness, cells[2])), nil
}

// Sub assigns a - b limb wise, offset by an auxiliary multiple of the
// wrong modulus scaled so that no limb can underflow the native field. The
// native cross value is adjusted with the same auxiliary composed
// natively, keeping the CRT check aligned.
func (c *Chip[W, N]) Sub(offset *circuit.Offset, a, b *circuit.AssignedInteger) (*circuit.AssignedInteger, error) {
	aux := c.rns.MakeAux(b.MaxVals())
	auxLimbs := aux.Limbs()
	auxNative := c.rns.Native(aux)

	var limbs [rns.NumberOfLimbs]circuit.AssignedLimb
	for i := range limbs {
		aLimb := a.Limb(i)
		bLimb := b.Limb(i)
		res, err := c.subWithConstant(offset, aLimb, bLimb, auxLimbs[i])
		if err != nil {
			return nil, err
		}
		maxVal := new(big.Int).Add(aLimb.MaxVal(), auxLimbs[i])
		limbs[i] = circuit.NewAssignedLimb(res.Value(), res.Cell(), maxVal)
	}

	native, err := c.subWithConstant(offset, a.Native(), b.Native(), auxNative)
	if err != nil {
		return nil, err
	}
	return circuit.NewAssignedInteger(limbs, native), nil
}
