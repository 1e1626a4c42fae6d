package rns

import (
	"fmt"
	"math/big"
)

// Compose combines little-endian limbs of bitLen bits each into a single
// integer. It is the exact left inverse of [Decompose].
//
// The following holds
//
//	res = Σ limbs[i] * 2^(bitLen * i)
func Compose(limbs []*big.Int, bitLen uint) *big.Int {
	res := new(big.Int)
	for i := range limbs {
		res.Lsh(res, bitLen)
		res.Add(res, limbs[len(limbs)-i-1])
	}
	return res
}

// Decompose splits input into nbLimbs little-endian limbs of bitLen bits
// each, by repeated masking with 2^bitLen-1 and right shifting. It errors
// if the input does not fit into nbLimbs limbs.
func Decompose(input *big.Int, nbLimbs, bitLen uint) ([]*big.Int, error) {
	if input.Sign() < 0 {
		return nil, fmt.Errorf("input is negative")
	}
	if uint(input.BitLen()) > nbLimbs*bitLen {
		return nil, fmt.Errorf("decomposed integer does not fit into %d limbs of %d bits", nbLimbs, bitLen)
	}
	mask := new(big.Int).Lsh(big.NewInt(1), bitLen)
	mask.Sub(mask, big.NewInt(1))
	res := make([]*big.Int, nbLimbs)
	tmp := new(big.Int).Set(input)
	for i := range res {
		res[i] = new(big.Int).And(tmp, mask)
		tmp.Rsh(tmp, bitLen)
	}
	return res, nil
}

// mustDecompose is used internally where the bound on input has already
// been established during parameter derivation.
func mustDecompose(input *big.Int, nbLimbs, bitLen uint) []*big.Int {
	res, err := Decompose(input, nbLimbs, bitLen)
	if err != nil {
		panic(fmt.Sprintf("rns: %v", err))
	}
	return res
}
