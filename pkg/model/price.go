package model

// PriceListItem is one tier of a tiered booking price. Price and Total are
// in the smallest currency unit; Unit may be fractional (hours).
type PriceListItem struct {
	Price int64   `json:"price" bson:"price" validate:"min=0"`
	Unit  float64 `json:"unit" bson:"unit" validate:"min=0"`
	Total int64   `json:"total" bson:"total" validate:"min=0"`
}
