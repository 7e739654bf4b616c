package pricing

import "math"

// MaxUse returns how many times a coupon can be applied to a single order.
// Non-repeatable coupons, free coupons and percentage discounts apply once.
// Repeatable reductions apply until they cover the total price or the
// booked units, capped by the remaining quantity. A non-positive parameter
// cannot span the order and falls back to a single use.
func MaxUse(info Info, totalPrice int64, bookedUnit float64, remain int, repeatable bool) int {
	if !repeatable || info.Params <= 0 {
		return 1
	}

	switch info.Type {
	case TypeReducePrice:
		return capRemain(int(math.Ceil(float64(totalPrice)/info.Params)), remain)
	case TypeReduceHours:
		units := math.Round(bookedUnit*1e5) / 1e5
		return capRemain(int(math.Ceil(units/info.Params)), remain)
	}
	return 1
}

func capRemain(max, remain int) int {
	if max < remain {
		return max
	}
	return remain
}
