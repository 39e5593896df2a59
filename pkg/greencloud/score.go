package greencloud

import (
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/carbon"
)

// Weights applied to the two carbon accounting methods when scoring.
// They must sum to 1.
const (
	LocationWeight = 0.3
	MarketWeight   = 0.7
)

// Score computes the sustainability score for a carbon sample as a weighted
// blend of the location-based and market-based intensities. Lower is better
// and the result is never negative.
func Score(sample *carbon.Sample) float64 {
	score := LocationWeight*sample.LocationBased + MarketWeight*sample.MarketBased
	if score < 0 {
		return 0
	}
	return score
}
