package circuit

import "math/big"

// Offset is the strictly increasing row cursor of the constraint table.
// Every operation that places values advances it; it is a single writer
// sequential log.
type Offset struct {
	row uint
}

// Next returns the current row and advances the cursor.
func (o *Offset) Next() uint {
	row := o.row
	o.row++
	return row
}

// Row returns the current row without advancing.
func (o *Offset) Row() uint {
	return o.row
}

// Term is one weighted operand of a gate combination. A term is either
// assigned (refers to an existing cell), unassigned (the gate places the
// witness) or zero.
type Term struct {
	assigned Assigned
	witness  Value[*big.Int]
	coeff    *big.Int
}

// AssignedTerm weights an already placed value.
func AssignedTerm(a Assigned, coeff *big.Int) Term {
	return Term{assigned: a, coeff: coeff}
}

// UnassignedTerm carries a witness for the gate to place.
func UnassignedTerm(witness Value[*big.Int], coeff *big.Int) Term {
	return Term{witness: witness, coeff: coeff}
}

// ZeroTerm is an empty slot in the combination.
func ZeroTerm() Term {
	return Term{}
}

// IsZero reports whether the term is an empty slot.
func (t Term) IsZero() bool {
	return t.assigned == nil && t.coeff == nil
}

// IsAssigned reports whether the term refers to an existing cell.
func (t Term) IsAssigned() bool {
	return t.assigned != nil
}

// Assigned returns the referenced value for assigned terms.
func (t Term) Assigned() Assigned {
	return t.assigned
}

// Witness returns the witness of an unassigned term.
func (t Term) Witness() Value[*big.Int] {
	if t.assigned != nil {
		return t.assigned.Value()
	}
	return t.witness
}

// Coeff returns the weight of the term in the combination.
func (t Term) Coeff() *big.Int {
	return t.coeff
}

// CombinationOption selects the combination mode of a gate row.
type CombinationOption struct {
	// Mul enables the product of the first two wires in the identity.
	Mul bool
	// NextCoeff, when non-nil, weights the fourth wire of the next row
	// into this row's identity. The next row must place that wire.
	NextCoeff *big.Int
}

// SingleLinerAdd is a purely linear single row combination.
func SingleLinerAdd() CombinationOption {
	return CombinationOption{}
}

// SingleLinerMul additionally multiplies the first two wires.
func SingleLinerMul() CombinationOption {
	return CombinationOption{Mul: true}
}

// CombineToNextAdd chains the identity into the fourth wire of the next
// row with the given coefficient.
func CombineToNextAdd(coeff *big.Int) CombinationOption {
	return CombinationOption{NextCoeff: coeff}
}

// CombineToNextMul is CombineToNextAdd with the product term enabled.
func CombineToNextMul(coeff *big.Int) CombinationOption {
	return CombinationOption{Mul: true, NextCoeff: coeff}
}

// MainGate is the combination primitive of the arithmetization layer, the
// engine's sole arithmetic boundary with the constraint system. One call
// appends one row enforcing
//
//	Σ coeff_i*w_i + [w_0*w_1] + constant + [nextCoeff*w_3(next row)] = 0
//
// over the native field, and returns the cell of every wire so unassigned
// witnesses become addressable. Synthesis errors are propagated unchanged
// to the caller; a malformed witness invalidates the whole proof.
type MainGate interface {
	Combine(offset *Offset, terms [4]Term, constant *big.Int, opt CombinationOption) ([4]Cell, error)
}

// RangeChip is the lookup backed range check primitive enforcing that an
// assigned value lies in [0, 2^bitLen).
type RangeChip interface {
	RangeValue(offset *Offset, witness Value[*big.Int], bitLen uint) (AssignedValue, error)
}
