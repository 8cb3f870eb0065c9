// Package menu holds the pure pricing and availability rules of the catalog.
// Nothing here touches storage or the network; callers pass entity fields in
// and get derived values back.
package menu

import "math"

// FinalPrice returns the price after applying a percentage discount, rounded
// half-up to 2 decimal places. A nil or non-positive discount leaves the
// price untouched at its original precision. Out-of-range discounts are the
// mutation path's problem; this function only gates on discount > 0.
func FinalPrice(price float64, discount *float64) float64 {
	if discount != nil && *discount > 0 {
		return math.Round(price*(1-*discount/100)*100) / 100
	}
	return price
}

// HasDiscount reports whether a discount is set and positive.
func HasDiscount(discount *float64) bool {
	return discount != nil && *discount > 0
}

// DiscountAmount is the absolute reduction from the original price, zero
// when no discount applies.
func DiscountAmount(price float64, discount *float64) float64 {
	if !HasDiscount(discount) {
		return 0
	}
	return math.Round((price-FinalPrice(price, discount))*100) / 100
}
