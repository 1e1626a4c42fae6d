package integer

import (
	"fmt"
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/circuit"
)

// testGate is an in memory evaluator of the combination identity, standing
// in for a real constraint system. Every row is checked eagerly against the
// native modulus; the first unsatisfied identity fails the synthesis. A row
// that chains into the next one is held pending until the fourth wire of
// the following row is available.
type testGate struct {
	native  *big.Int
	pending *pendingIdentity
	rows    uint
}

type pendingIdentity struct {
	row   uint
	sum   *big.Int
	coeff *big.Int
	known bool
}

func newTestGate(native *big.Int) *testGate {
	return &testGate{native: new(big.Int).Set(native)}
}

func (g *testGate) Combine(offset *circuit.Offset, terms [4]circuit.Term, constant *big.Int, opt circuit.CombinationOption) ([4]circuit.Cell, error) {
	row := offset.Next()
	g.rows++

	var cells [4]circuit.Cell
	var values [4]*big.Int
	known := true
	for i, term := range terms {
		cells[i] = circuit.Cell{Row: row, Wire: i}
		if term.IsZero() {
			values[i] = new(big.Int)
			continue
		}
		v, ok := term.Witness().Get()
		if !ok {
			known = false
			continue
		}
		values[i] = v
	}

	if p := g.pending; p != nil {
		g.pending = nil
		if p.known && known {
			sum := new(big.Int).Mul(p.coeff, values[3])
			sum.Add(sum, p.sum)
			if sum.Mod(sum, g.native).Sign() != 0 {
				return cells, fmt.Errorf("unsatisfied chained identity at row %d", p.row)
			}
		}
	}

	sum := new(big.Int).Set(constant)
	if known {
		for i, term := range terms {
			if term.IsZero() {
				continue
			}
			sum.Add(sum, new(big.Int).Mul(term.Coeff(), values[i]))
		}
		if opt.Mul {
			sum.Add(sum, new(big.Int).Mul(values[0], values[1]))
		}
	}

	if opt.NextCoeff != nil {
		g.pending = &pendingIdentity{row: row, sum: sum, coeff: opt.NextCoeff, known: known}
		return cells, nil
	}
	if known {
		if sum.Mod(sum, g.native).Sign() != 0 {
			return cells, fmt.Errorf("unsatisfied identity at row %d", row)
		}
	}
	return cells, nil
}

// testRangeChip checks range claims directly on the witness instead of
// decomposing into lookup windows.
type testRangeChip struct {
	checks uint
}

func (r *testRangeChip) RangeValue(offset *circuit.Offset, witness circuit.Value[*big.Int], bitLen uint) (circuit.AssignedValue, error) {
	row := offset.Next()
	r.checks++
	if v, ok := witness.Get(); ok {
		if v.Sign() < 0 || uint(v.BitLen()) > bitLen {
			return circuit.AssignedValue{}, fmt.Errorf("value out of %d bit range at row %d", bitLen, row)
		}
	}
	return circuit.NewAssignedValue(witness, circuit.Cell{Row: row, Wire: 0}), nil
}
