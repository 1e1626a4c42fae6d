package circuit

import (
	"fmt"
	"math/big"

	"github.com/Trapdoor-Tech/halo2wrong/debug"
)

// TracedGate wraps a combination gate so that synthesis errors carry the
// captured call stack in debug builds. Release builds pass errors through
// untouched.
func TracedGate(gate MainGate) MainGate {
	return tracedGate{gate: gate}
}

type tracedGate struct {
	gate MainGate
}

func (g tracedGate) Combine(offset *Offset, terms [4]Term, constant *big.Int, opt CombinationOption) ([4]Cell, error) {
	cells, err := g.gate.Combine(offset, terms, constant, opt)
	if err != nil && debug.Debug {
		return cells, fmt.Errorf("%w\n%s", err, debug.Stack())
	}
	return cells, err
}

// TracedRangeChip is the range check counterpart of [TracedGate].
func TracedRangeChip(rangeChip RangeChip) RangeChip {
	return tracedRangeChip{rangeChip: rangeChip}
}

type tracedRangeChip struct {
	rangeChip RangeChip
}

func (r tracedRangeChip) RangeValue(offset *Offset, witness Value[*big.Int], bitLen uint) (AssignedValue, error) {
	assigned, err := r.rangeChip.RangeValue(offset, witness, bitLen)
	if err != nil && debug.Debug {
		return assigned, fmt.Errorf("%w\n%s", err, debug.Stack())
	}
	return assigned, err
}
