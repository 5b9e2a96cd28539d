package acbcutil

import "strconv"

// AmountUnit describes a method of converting an Amount to something other
// than the base unit.
type AmountUnit int

// Amount represents the base coin monetary unit (the smallest unit which can
// be represented by an Amount) as an int64.
type Amount int64

// String returns the string representation of the amount in the base unit.
func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// ToUnit converts a monetary amount counted in the base unit to a floating
// point value representing an amount of the given unit.
func (a Amount) ToUnit(u AmountUnit) float64 {
	return float64(a) / float64(int64(1)<<uint(u))
}
