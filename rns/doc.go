// Package rns implements the witness side of foreign field emulation: it
// represents elements of a "wrong" field as fixed width limb tuples over a
// smaller native field and produces the quotient, remainder and carry
// witnesses a circuit needs to verify reduction, multiplication,
// subtraction and inversion without native field overflow.
//
// A value x is represented as 4 limbs in little-endian order,
//
//	x = Σ limb[i] * 2^(i*bitLenLimb)
//
// so that the same relation can be checked both modulo the native field
// and modulo the binary modulus 2^(4*bitLenLimb). As long as operand sizes
// stay below the product of the two (the CRT modulus), agreement under
// both pins the relation down over the integers.
//
// All parameters are derived once by [Construct] and are immutable
// afterwards. Parameter derivation panics on any soundness violation;
// these indicate a misconfiguration, never a data error.
package rns
