// Package pricing implements the coupon arithmetic: classifying a stored
// coupon into its kind, resolving how many times it can be applied to an
// order, and computing the discount amount against a tiered price list.
// Everything here is pure; persistence and request handling live in the
// repository and service layers.
package pricing

import (
	"strconv"
	"strings"
)

// Type is the classified kind of a coupon.
type Type string

const (
	TypeFree        Type = "free"
	TypeDiscount    Type = "discount"
	TypeReducePrice Type = "reducePrice"
	TypeReduceHours Type = "reduceHours"
)

// wireTypes maps the backend's numeric type codes to classified kinds.
var wireTypes = map[string]Type{
	"0": TypeFree,
	"1": TypeDiscount,
	"2": TypeReducePrice,
	"3": TypeReduceHours,
}

// TypeFromWire resolves a backend type code like "2" to its kind.
func TypeFromWire(code string) (Type, bool) {
	t, ok := wireTypes[code]
	return t, ok
}

// Info is a coupon classified into its kind with a normalized numeric
// parameter. The parameter's meaning depends on the kind: tenths of the
// retained fraction for discounts, a flat amount for price reductions,
// waived units per use for hour reductions.
type Info struct {
	Type    Type    `json:"type"`
	TextKey string  `json:"text_key"`
	Params  float64 `json:"params"`
}

// Classify normalizes a stored coupon type and content into Info. Discount
// content is right-padded to two digits before scaling, so "8" reads as
// "80" (eighty percent retained). Unknown types classify to the zero Info.
func Classify(wireType, content string) Info {
	switch wireTypes[wireType] {
	case TypeFree:
		return Info{Type: TypeFree, TextKey: "free"}
	case TypeDiscount:
		return Info{Type: TypeDiscount, TextKey: "discount", Params: parseNumber(padRight(content, 2)) / 10}
	case TypeReducePrice:
		return Info{Type: TypeReducePrice, TextKey: "reduce-price", Params: parseNumber(content)}
	case TypeReduceHours:
		return Info{Type: TypeReduceHours, TextKey: "reduce-hours", Params: parseNumber(content) / 10}
	}
	return Info{}
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return n
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += "0"
	}
	return s
}
