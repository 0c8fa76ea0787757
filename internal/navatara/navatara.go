// Package navatara classifies the day's nakshatra relative to the natal one.
package navatara

import "astrotrade/internal/types"

// Classify maps nakshatra indices onto the 9-fold navatara cycle.
// The difference is taken modulo 27 before modulo 9, with negative
// differences wrapped, so the result is invariant under whole-circle offsets.
func Classify(current, natal int) types.Navatara {
	diff := ((current-natal)%27 + 27) % 27
	return types.Navatara(diff % 9)
}

// Unfavourable reports the navataras the rule engine avoids outright.
func Unfavourable(n types.Navatara) bool {
	return n == types.Vipat || n == types.Pratyari || n == types.Naidhana
}

// Cautionary reports the navataras that call for light trading.
func Cautionary(n types.Navatara) bool {
	return n == types.Janma || n == types.Kshema
}
