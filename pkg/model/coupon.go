package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Coupon is the stored form of a promotion code. The string-typed fields
// mirror the booking backend's wire format ("None" sentinels, "0"/"1"
// flags) so lookups can be returned verbatim.
type Coupon struct {
	ID         string          `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Code       string          `json:"code" bson:"code" validate:"required,min=2,max=32"`
	OwnerCode  string          `json:"owner_code" bson:"owner_code" validate:"required,min=1,max=64"`
	Type       string          `json:"type" bson:"type" validate:"required,oneof=0 1 2 3"`
	Content    string          `json:"content" bson:"content" validate:"required,max=16"`
	Quantity   string          `json:"quantity" bson:"quantity" validate:"required,max=16"`
	Repeatable string          `json:"repeatable" bson:"repeatable" validate:"required,oneof=0 1"`
	Phone      string          `json:"phone" bson:"phone" validate:"required,oneof=0 1"`
	Duration   *CouponDuration `json:"duration" bson:"duration,omitempty"`
	Blocked    bool            `json:"blocked,omitempty" bson:"blocked"`
	UsedCount  int64           `json:"used_count,omitempty" bson:"used_count"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// CouponDuration is the daily time window a coupon is valid in. On the wire
// it is either the literal string "None" or {"start":"HH:mm","end":"HH:mm"};
// in Go the "None" case is a nil *CouponDuration.
type CouponDuration struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// None is the backend's literal for an absent optional field, used for
// both quantity and duration.
const None = "None"

var noneLiteral = []byte(`"` + None + `"`)

func (d *CouponDuration) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), noneLiteral) {
		*d = CouponDuration{}
		return nil
	}
	type alias CouponDuration
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = CouponDuration(a)
	return nil
}

// CouponView is the wire form of a coupon served to booking clients,
// with the duration rendered back to its "None"-or-object shape.
type CouponView struct {
	Type       string          `json:"type"`
	Content    string          `json:"content"`
	Quantity   string          `json:"quantity"`
	Repeatable string          `json:"repeatable"`
	Phone      string          `json:"phone"`
	Duration   json.RawMessage `json:"duration"`
}

func (c *Coupon) View() CouponView {
	return CouponView{
		Type:       c.Type,
		Content:    c.Content,
		Quantity:   c.Quantity,
		Repeatable: c.Repeatable,
		Phone:      c.Phone,
		Duration:   MarshalDuration(c.Duration),
	}
}

// MarshalDuration renders the wire form of a possibly-absent window.
func MarshalDuration(d *CouponDuration) json.RawMessage {
	if d == nil || (d.Start == "" && d.End == "") {
		return json.RawMessage(noneLiteral)
	}
	data, _ := json.Marshal(d)
	return data
}
