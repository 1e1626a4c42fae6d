// Package halo2wrong implements non native finite field arithmetic for
// zero knowledge circuits: emulating operations over a "wrong" field whose
// modulus differs from the native field the constraint system works in.
//
// Field elements are carried as four limbs in a residue number system; the
// rns package derives the parameter bundle and provides the off circuit
// witness arithmetic, while circuit and circuit/integer place and
// constrain those witnesses through a four wire combination gate and a
// lookup backed range check.
package halo2wrong
