package circuit

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubGate struct {
	err error
}

func (g stubGate) Combine(offset *Offset, terms [4]Term, constant *big.Int, opt CombinationOption) ([4]Cell, error) {
	row := offset.Next()
	var cells [4]Cell
	for i := range cells {
		cells[i] = Cell{Row: row, Wire: i}
	}
	return cells, g.err
}

type stubRangeChip struct {
	err error
}

func (r stubRangeChip) RangeValue(offset *Offset, witness Value[*big.Int], bitLen uint) (AssignedValue, error) {
	return NewAssignedValue(witness, Cell{Row: offset.Next()}), r.err
}

func TestTracedGate(t *testing.T) {
	offset := &Offset{}

	cells, err := TracedGate(stubGate{}).Combine(offset, [4]Term{}, big.NewInt(0), SingleLinerAdd())
	require.NoError(t, err)
	require.Equal(t, Cell{Row: 0, Wire: 3}, cells[3])

	// the wrapped error stays matchable whether or not a stack is attached
	sentinel := errors.New("unsatisfied identity")
	_, err = TracedGate(stubGate{err: sentinel}).Combine(offset, [4]Term{}, big.NewInt(0), SingleLinerAdd())
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, uint(2), offset.Row())
}

func TestTracedRangeChip(t *testing.T) {
	offset := &Offset{}
	witness := Known(big.NewInt(1))

	assigned, err := TracedRangeChip(stubRangeChip{}).RangeValue(offset, witness, 1)
	require.NoError(t, err)
	require.Equal(t, uint(0), assigned.Cell().Row)

	sentinel := errors.New("out of range")
	_, err = TracedRangeChip(stubRangeChip{err: sentinel}).RangeValue(offset, witness, 1)
	require.ErrorIs(t, err, sentinel)
}
