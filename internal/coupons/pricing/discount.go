package pricing

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"slotbook/pkg/model"
)

// Discount computes the amount taken off totalPrice for the given coupon
// kind. Amounts are in the smallest currency unit. Unknown kinds waive the
// whole total, matching the free case.
func Discount(t Type, params float64, couponUse int, totalPrice int64, priceList []model.PriceListItem, bookedUnit float64) int64 {
	switch t {
	case TypeDiscount:
		// params holds tenths of the percentage, e.g. 8.5 for an 85%
		// discount. Decimal arithmetic keeps two-digit fractions exact.
		fraction := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(params).Div(decimal.NewFromInt(10)))
		return decimal.NewFromInt(totalPrice).Mul(fraction).Floor().IntPart()
	case TypeReducePrice:
		return int64(params * float64(couponUse))
	case TypeReduceHours:
		return reduceHours(params, couponUse, priceList, bookedUnit)
	}
	return totalPrice
}

// reduceHours waives params units per coupon use, consuming the cheapest
// price tiers first. Once the waived units cover the whole booking the
// discount is the sum of all tier totals.
func reduceHours(params float64, couponUse int, priceList []model.PriceListItem, bookedUnit float64) int64 {
	waived := params * float64(couponUse)

	if bookedUnit <= waived {
		var full int64
		for _, item := range priceList {
			full += item.Total
		}
		return full
	}

	sorted := make([]model.PriceListItem, len(priceList))
	copy(sorted, priceList)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })

	var discount float64
	remaining := waived
	for _, item := range sorted {
		if remaining <= 0 {
			break
		}
		take := math.Min(remaining, item.Unit)
		remaining -= take
		discount += take * float64(item.Price)
	}
	return int64(discount)
}
