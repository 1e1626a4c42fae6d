// Package circuit defines the boundary between the witness engine and the
// constraint system: the explicit witness absence state used during key
// generation passes, handles to values placed in the constraint table, and
// the interfaces of the two external collaborators the integer chip
// consumes, the combination gate and the range check.
//
// The constraint table is an append-only log addressed by a strictly
// increasing row cursor ([Offset]). The cursor is passed by exclusive
// reference through every call chain; it must never be shared between
// concurrent writers.
package circuit
