package pricing

import (
	"strconv"

	"slotbook/pkg/model"
)

// unlimitedQuantity stands in for a "None" quantity on the wire.
const unlimitedQuantity = 9999999

// Data is the fully resolved view of a coupon against one order: its
// classification plus the usage bounds derived from the order's totals.
type Data struct {
	Info
	MaxUse     int  `json:"max_use"`
	Repeatable bool `json:"repeatable"`
	CouponUse  int  `json:"coupon_use"`
	Remain     int  `json:"remain"`
	BindPhone  bool `json:"bind_phone"`
}

// Process resolves a stored coupon against an order. CouponUse starts at
// the maximum; callers may lower it before computing the discount.
func Process(c model.Coupon, totalPrice int64, bookedUnit float64) Data {
	info := Classify(c.Type, c.Content)

	remain := unlimitedQuantity
	if c.Quantity != model.None {
		if n, err := strconv.Atoi(c.Quantity); err == nil {
			remain = n
		} else {
			remain = 0
		}
	}

	repeatable := c.Repeatable == "1"
	maxUse := MaxUse(info, totalPrice, bookedUnit, remain, repeatable)

	if remain == 0 {
		remain = 1
	}

	return Data{
		Info:       info,
		MaxUse:     maxUse,
		Repeatable: repeatable,
		CouponUse:  maxUse,
		Remain:     remain,
		BindPhone:  c.Phone == "1",
	}
}
