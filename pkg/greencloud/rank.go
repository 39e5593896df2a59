package greencloud

import "sort"

// Rank orders scored regions by ascending score, breaking ties by ascending
// distance. The sort is stable, so equally scored regions at the same
// distance keep their input order.
func Rank(regions []ScoredRegion) {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Score != regions[j].Score {
			return regions[i].Score < regions[j].Score
		}
		return regions[i].DistanceKm < regions[j].DistanceKm
	})
}
