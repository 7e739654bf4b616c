package model

import "time"

// CouponLookupRequest identifies a coupon to resolve for a customer.
type CouponLookupRequest struct {
	Code      string   `json:"code" validate:"required,min=2,max=32"`
	OwnerCode string   `json:"owner_code" validate:"required,min=1,max=64"`
	RoomID    string   `json:"room_id" validate:"required,min=1,max=64"`
	PlanID    string   `json:"plan_id" validate:"omitempty,max=64"`
	Phone     string   `json:"phone" validate:"omitempty,max=32"`
	Dates     []string `json:"dates" validate:"omitempty,dive,valid_date"`
}

// CouponQuoteRequest applies a coupon to a concrete booking and asks what
// it would save. CouponUse below the maximum lowers the applied uses.
type CouponQuoteRequest struct {
	CouponLookupRequest
	Mode       string          `json:"mode" validate:"omitempty,oneof=seat event room"`
	Date       string          `json:"date" validate:"required,valid_date"`
	StartTime  string          `json:"start_time" validate:"required,valid_clock"`
	EndTime    string          `json:"end_time" validate:"required,valid_clock"`
	TotalPrice int64           `json:"total_price" validate:"min=0"`
	PriceList  []PriceListItem `json:"price_list" validate:"omitempty,dive"`
	BookedUnit float64         `json:"booked_unit" validate:"min=0"`
	CouponUse  *int            `json:"coupon_use" validate:"omitempty,min=1"`
}

// CouponRedeemRequest consumes uses of a coupon after a booking is paid.
type CouponRedeemRequest struct {
	Code      string `json:"code" validate:"required,min=2,max=32"`
	OwnerCode string `json:"owner_code" validate:"required,min=1,max=64"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Uses      int    `json:"uses" validate:"min=1"`
}

// CouponRedemption records one redemption, keyed to the redeeming phone so
// single-use coupons stay single use per customer.
type CouponRedemption struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	CouponID  string    `json:"coupon_id" bson:"coupon_id"`
	Code      string    `json:"code" bson:"code"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Uses      int       `json:"uses" bson:"uses"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
