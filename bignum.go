package laxjson

import "math/big"

// bigBaseToDecimal converts digits in the given base to a decimal string
// without truncation, for hex/octal number literals too large for a
// uint64 (spec §9: "no silent data loss for numbers").
func bigBaseToDecimal(digits string, base int) string {
	n := new(big.Int)
	n.SetString(digits, base)
	return n.String()
}
