package integer

import (
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/circuit"
	"github.com/Trapdoor-Tech/halo2wrong/rns"
)

// combineWitness computes a derived witness from the given values; if any
// input is unknown the result is unknown.
func combineWitness(f func(vals []*big.Int) *big.Int, vals ...circuit.Value[*big.Int]) circuit.Value[*big.Int] {
	known := make([]*big.Int, len(vals))
	for i, v := range vals {
		x, ok := v.Get()
		if !ok {
			return circuit.Unknown[*big.Int]()
		}
		known[i] = x
	}
	return circuit.Known(f(known))
}

// Reduce canonicalizes an assigned integer modulo the wrong modulus. The
// quotient is range checked into a single limb, the intermediate terms
// t_i = a_i + p_i*q are assigned, and the two residue windows are
// constrained to vanish below the carries v0, v1.
func (c *Chip[W, N]) Reduce(offset *circuit.Offset, a *circuit.AssignedInteger) (*circuit.AssignedInteger, error) {
	ctx := circuit.MapValue(c.integerValue(a), c.rns.Reduce)

	qWitness := circuit.MapValue(ctx, func(r *rns.ReductionContext) *big.Int { return r.Quotient.Short })
	q, err := c.rangeChip.RangeValue(offset, qWitness, c.rns.BitLenLimb)
	if err != nil {
		return nil, err
	}

	resultWitness := circuit.MapValue(ctx, func(r *rns.ReductionContext) *rns.Integer { return r.Result })
	result, err := c.RangeAssignInteger(offset, resultWitness, uint(c.rns.MaxMostSignificantReducedLimb.BitLen()))
	if err != nil {
		return nil, err
	}

	v0, v1, err := c.rangeCheckCarries(offset, ctx, c.rns.RedV0Overflow, c.rns.RedV1Overflow)
	if err != nil {
		return nil, err
	}

	// t_i = a_i + p_i*q
	var t [rns.NumberOfLimbs]circuit.AssignedValue
	for i := range t {
		witness := circuit.MapValue(ctx, func(r *rns.ReductionContext) *big.Int { return r.T[i] })
		cells, err := c.gate.Combine(offset, [4]circuit.Term{
			circuit.AssignedTerm(a.Limb(i), one),
			circuit.AssignedTerm(q, c.rns.NegativeWrongModulusDecomposed[i]),
			circuit.UnassignedTerm(witness, minusOne),
			circuit.ZeroTerm(),
		}, zero, circuit.SingleLinerAdd())
		if err != nil {
			return nil, err
		}
		t[i] = circuit.NewAssignedValue(witness, cells[2])
	}

	if err := c.constrainResidues(offset, t, result, v0, v1); err != nil {
		return nil, err
	}

	// native cross check: a = p*q + r
	_, err = c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(a.Native(), one),
		circuit.AssignedTerm(q, neg(c.rns.WrongModulusInNativeModulus)),
		circuit.AssignedTerm(result.Native(), minusOne),
		circuit.ZeroTerm(),
	}, zero, circuit.SingleLinerAdd())
	if err != nil {
		return nil, err
	}

	return result, nil
}

// rangeCheckCarries assigns the two residue carries under the overflow
// lengths derived at configuration time.
func (c *Chip[W, N]) rangeCheckCarries(offset *circuit.Offset, ctx circuit.Value[*rns.ReductionContext], v0Overflow, v1Overflow uint) (circuit.AssignedValue, circuit.AssignedValue, error) {
	v0Witness := circuit.MapValue(ctx, func(r *rns.ReductionContext) *big.Int { return r.V0 })
	v0, err := c.rangeChip.RangeValue(offset, v0Witness, c.rns.BitLenLimb+v0Overflow)
	if err != nil {
		return circuit.AssignedValue{}, circuit.AssignedValue{}, err
	}
	v1Witness := circuit.MapValue(ctx, func(r *rns.ReductionContext) *big.Int { return r.V1 })
	v1, err := c.rangeChip.RangeValue(offset, v1Witness, c.rns.BitLenLimb+v1Overflow)
	if err != nil {
		return circuit.AssignedValue{}, circuit.AssignedValue{}, err
	}
	return v0, v1, nil
}

// constrainResidues enforces the two window carry check
//
//	t_0 + s*t_1 - r_0 - s*r_1 = 2^(2r)*v_0
//	t_2 + s*t_3 - r_2 - s*r_3 + v_0 = 2^(2r)*v_1
//
// Each window needs a fifth operand, which travels through the fourth
// wire of the following row.
func (c *Chip[W, N]) constrainResidues(offset *circuit.Offset, t [rns.NumberOfLimbs]circuit.AssignedValue, result *circuit.AssignedInteger, v0, v1 circuit.AssignedValue) error {
	s := c.rns.LeftShifterR
	negS := neg(s)
	negSS := neg(c.rns.LeftShifter2R)

	_, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(t[0], one),
		circuit.AssignedTerm(t[1], s),
		circuit.AssignedTerm(result.Limb(0), minusOne),
		circuit.AssignedTerm(result.Limb(1), negS),
	}, zero, circuit.CombineToNextAdd(negSS))
	if err != nil {
		return err
	}
	_, err = c.gate.Combine(offset, [4]circuit.Term{
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
		circuit.AssignedTerm(v0, zero),
	}, zero, circuit.SingleLinerAdd())
	if err != nil {
		return err
	}

	// the second window folds in v0 and needs six operands: chain the
	// partial sum w = t_2 + s*t_3 + v_0 - r_2 into the closing row
	wWitness := combineWitness(func(vals []*big.Int) *big.Int {
		w := new(big.Int).Mul(s, vals[1])
		w.Add(w, vals[0])
		w.Add(w, vals[2])
		w.Sub(w, vals[3])
		return c.redNative(w)
	}, t[2].Value(), t[3].Value(), v0.Value(), result.Limb(2).Value())

	_, err = c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(t[2], one),
		circuit.AssignedTerm(t[3], s),
		circuit.AssignedTerm(v0, one),
		circuit.AssignedTerm(result.Limb(2), minusOne),
	}, zero, circuit.CombineToNextAdd(minusOne))
	if err != nil {
		return err
	}
	_, err = c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(result.Limb(3), negS),
		circuit.AssignedTerm(v1, negSS),
		circuit.ZeroTerm(),
		circuit.UnassignedTerm(wWitness, one),
	}, zero, circuit.SingleLinerAdd())
	return err
}
