package integer

import (
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/circuit"
	"github.com/Trapdoor-Tech/halo2wrong/rns"
)

var (
	zero     = big.NewInt(0)
	one      = big.NewInt(1)
	minusOne = big.NewInt(-1)
)

func neg(e *big.Int) *big.Int {
	return new(big.Int).Neg(e)
}

// Chip performs foreign field arithmetic inside a circuit. It consumes the
// combination gate and the range check collaborators and the immutable rns
// parameter bundle; it holds no other state, the row cursor is threaded
// through every call.
type Chip[W rns.FieldParams, N rns.FieldParams] struct {
	rns       *rns.Rns[W, N]
	gate      circuit.MainGate
	rangeChip circuit.RangeChip
}

// New builds an integer chip over the given collaborators. Synthesis
// errors of both collaborators carry a stack capture in debug builds.
func New[W rns.FieldParams, N rns.FieldParams](params *rns.Rns[W, N], gate circuit.MainGate, rangeChip circuit.RangeChip) *Chip[W, N] {
	return &Chip[W, N]{
		rns:       params,
		gate:      circuit.TracedGate(gate),
		rangeChip: circuit.TracedRangeChip(rangeChip),
	}
}

// Rns returns the parameter bundle the chip was configured with.
func (c *Chip[W, N]) Rns() *rns.Rns[W, N] {
	return c.rns
}

// integerValue recomposes the witness of an assigned integer.
func (c *Chip[W, N]) integerValue(a *circuit.AssignedInteger) circuit.Value[*rns.Integer] {
	return a.Integer(c.rns.BitLenLimb)
}

func (c *Chip[W, N]) redNative(e *big.Int) *big.Int {
	return e.Mod(e, c.rns.NativeModulus)
}

// assertZero constrains an assigned value to zero.
func (c *Chip[W, N]) assertZero(offset *circuit.Offset, a circuit.Assigned) error {
	_, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(a, one),
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
		circuit.ZeroTerm(),
	}, zero, circuit.SingleLinerAdd())
	return err
}

// assertBit constrains an assigned value to be boolean, x*x = x.
func (c *Chip[W, N]) assertBit(offset *circuit.Offset, a circuit.Assigned) error {
	_, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(a, zero),
		circuit.AssignedTerm(a, zero),
		circuit.AssignedTerm(a, minusOne),
		circuit.ZeroTerm(),
	}, zero, circuit.SingleLinerMul())
	return err
}

// subWithConstant assigns res = a - b + constant.
func (c *Chip[W, N]) subWithConstant(offset *circuit.Offset, a, b circuit.Assigned, constant *big.Int) (circuit.AssignedValue, error) {
	witness := circuit.MapValue2(a.Value(), b.Value(), func(x, y *big.Int) *big.Int {
		res := new(big.Int).Sub(x, y)
		res.Add(res, constant)
		return c.redNative(res)
	})
	cells, err := c.gate.Combine(offset, [4]circuit.Term{
		circuit.AssignedTerm(a, one),
		circuit.AssignedTerm(b, minusOne),
		circuit.UnassignedTerm(witness, minusOne),
		circuit.ZeroTerm(),
	}, constant, circuit.SingleLinerAdd())
	if err != nil {
		return circuit.AssignedValue{}, err
	}
	return circuit.NewAssignedValue(witness, cells[2]), nil
}
