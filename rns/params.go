package rns

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

// FieldParams pins one of the two fields of an emulation pair at the type
// level. The engine is generic over a fixed (wrong, native) pair; fields
// are never mixed at the value level.
type FieldParams interface {
	Modulus() *big.Int
	IsPrime() bool
}

// Secp256k1Fp parametrizes the secp256k1 base field.
type Secp256k1Fp struct{}

func (Secp256k1Fp) Modulus() *big.Int { return ecc.SECP256K1.BaseField() }
func (Secp256k1Fp) IsPrime() bool     { return true }

// Secp256k1Fr parametrizes the secp256k1 scalar field.
type Secp256k1Fr struct{}

func (Secp256k1Fr) Modulus() *big.Int { return ecc.SECP256K1.ScalarField() }
func (Secp256k1Fr) IsPrime() bool     { return true }

// BN254Fr parametrizes the BN254 scalar field, the usual native field of
// the proving system.
type BN254Fr struct{}

func (BN254Fr) Modulus() *big.Int { return ecc.BN254.ScalarField() }
func (BN254Fr) IsPrime() bool     { return true }

// BN254Fp parametrizes the BN254 base field.
type BN254Fp struct{}

func (BN254Fp) Modulus() *big.Int { return ecc.BN254.BaseField() }
func (BN254Fp) IsPrime() bool     { return true }

// BLS12377Fr parametrizes the BLS12-377 scalar field.
type BLS12377Fr struct{}

func (BLS12377Fr) Modulus() *big.Int { return ecc.BLS12_377.ScalarField() }
func (BLS12377Fr) IsPrime() bool     { return true }
