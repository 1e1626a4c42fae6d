package integer

import (
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/circuit"
	"github.com/Trapdoor-Tech/halo2wrong/rns"
)

// Mul assigns the product of a and b modulo the wrong modulus. The full
// quotient integer and the result are range assigned, the schoolbook
// convolution terms
//
//	t_k = Σ_{i+j=k} a_i*b_j + p_i*q_j
//
// are built as running sum ladders through the gate, and the residue
// windows tie them to the claimed result. Operands must be within the
// operand range; reduce first if in doubt.
func (c *Chip[W, N]) Mul(offset *circuit.Offset, a, b *circuit.AssignedInteger) (*circuit.AssignedInteger, error) {
	ctx := circuit.MapValue2(c.integerValue(a), c.integerValue(b), c.rns.Mul)

	qWitness := circuit.MapValue(ctx, func(r *rns.ReductionContext) *rns.Integer { return r.Quotient.Long })
	q, err := c.RangeAssignInteger(offset, qWitness, uint(c.rns.MaxMostSignificantMulQuotientLimb.BitLen()))
	if err != nil {
		return nil, err
	}

	resultWitness := circuit.MapValue(ctx, func(r *rns.ReductionContext) *rns.Integer { return r.Result })
	result, err := c.RangeAssignInteger(offset, resultWitness, uint(c.rns.MaxMostSignificantReducedLimb.BitLen()))
	if err != nil {
		return nil, err
	}

	v0, v1, err := c.rangeCheckCarries(offset, ctx, c.rns.MulV0Overflow, c.rns.MulV1Overflow)
	if err != nil {
		return nil, err
	}

	p := c.rns.NegativeWrongModulusDecomposed
	var t [rns.NumberOfLimbs]circuit.AssignedValue
	for k := 0; k < rns.NumberOfLimbs; k++ {
		// one row per partial product, the accumulator flows through the
		// fourth wire of the following row
		partial := circuit.Value[*big.Int]{}
		for m := 0; m <= k; m++ {
			i, j := m, k-m

			prevTerm := circuit.ZeroTerm()
			if m > 0 {
				prevTerm = circuit.UnassignedTerm(partial, one)
			}

			pi := p[i]
			acc := combineWitness(func(vals []*big.Int) *big.Int {
				res := new(big.Int).Mul(vals[0], vals[1])
				res.Add(res, new(big.Int).Mul(pi, vals[2]))
				res.Add(res, vals[3])
				return c.redNative(res)
			}, a.Limb(i).Value(), b.Limb(j).Value(), q.Limb(j).Value(), prevWitness(partial))
			partial = acc

			_, err := c.gate.Combine(offset, [4]circuit.Term{
				circuit.AssignedTerm(a.Limb(i), zero),
				circuit.AssignedTerm(b.Limb(j), zero),
				circuit.AssignedTerm(q.Limb(j), pi),
				prevTerm,
			}, zero, circuit.CombineToNextMul(minusOne))
			if err != nil {
				return nil, err
			}
		}

		tWitness := circuit.MapValue(ctx, func(r *rns.ReductionContext) *big.Int { return r.T[k] })
		cells, err := c.gate.Combine(offset, [4]circuit.Term{
			circuit.ZeroTerm(),
			circuit.ZeroTerm(),
			circuit.ZeroTerm(),
			circuit.UnassignedTerm(tWitness, zero),
		}, zero, circuit.SingleLinerAdd())
		if err != nil {
			return nil, err
		}
		t[k] = circuit.NewAssignedValue(tWitness, cells[3])
	}

	if err := c.constrainResidues(offset, t, result, v0, v1); err != nil {
		return nil, err
	}

	// native cross check: a*b = p*q + r
	_, err = c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(a.Native(), zero),
		circuit.AssignedTerm(b.Native(), zero),
		circuit.AssignedTerm(q.Native(), neg(c.rns.WrongModulusInNativeModulus)),
		circuit.AssignedTerm(result.Native(), minusOne),
	}, zero, circuit.SingleLinerMul())
	if err != nil {
		return nil, err
	}

	return result, nil
}

// prevWitness substitutes zero for the missing accumulator of the first
// ladder row.
func prevWitness(partial circuit.Value[*big.Int]) circuit.Value[*big.Int] {
	if _, ok := partial.Get(); ok {
		return partial
	}
	return circuit.Known(new(big.Int))
}
