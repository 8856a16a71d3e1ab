package inventory

import "math"

// Distribute splits a stock delta across variants in proportion to
// their current stock levels. The result has one share per input, in
// the same order.
//
// Each share is rounded independently, so the shares may differ from
// delta by up to ±(len(stocks)-1). Callers clamp the applied result at
// zero and derive the new aggregate from the updated variants, so the
// drift never leaks into the aggregate invariant.
//
// When the current total is zero, proportional shares are undefined:
// a positive delta is split evenly, a non-positive delta yields zeros
// (nothing to remove from already-empty stock).
func Distribute(delta int64, stocks []int64) []int64 {
	shares := make([]int64, len(stocks))
	if len(stocks) == 0 {
		return shares
	}

	var total int64
	for _, s := range stocks {
		total += s
	}

	if total <= 0 {
		if delta > 0 {
			even := int64(math.Round(float64(delta) / float64(len(stocks))))
			for i := range shares {
				shares[i] = even
			}
		}
		return shares
	}

	for i, s := range stocks {
		shares[i] = int64(math.Round(float64(delta) * float64(s) / float64(total)))
	}
	return shares
}
