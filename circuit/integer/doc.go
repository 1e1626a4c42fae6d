// Package integer implements the foreign field integer chip: it assigns
// limb tuples into the constraint table and wires the reduction,
// multiplication, subtraction, canonicality and inversion witnesses of the
// rns engine into combination gate rows and range checks, so the circuit
// verifies each relation instead of computing it.
package integer
