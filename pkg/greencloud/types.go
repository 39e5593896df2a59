// Package greencloud recommends AWS regions that balance proximity to the
// caller with grid carbon intensity. Candidates are filtered by service
// availability and distance, scored from live carbon data, and ranked with
// the lowest score first.
package greencloud

// Outcome values reported on a Recommendation
const (
	OutcomeRecommended    = "recommended"
	OutcomeNoViableRegion = "no_viable_region"
)

// ReasonDataUnavailable marks regions whose carbon data could not be fetched
const ReasonDataUnavailable = "data unavailable"

// ServiceRequest describes what the caller needs from a region
type ServiceRequest struct {
	// Services lists required service identifiers, e.g. "ec2 g6.4xlarge"
	// or "rds mysql". Leave empty to rank purely on proximity and carbon.
	Services []string `json:"services,omitempty"`

	// Workload is a free-text description used to derive Services when
	// the list is empty
	Workload string `json:"workload,omitempty"`

	// Latitude and Longitude locate the caller
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// MaxDistanceKm bounds the search radius, falling back to the
	// configured default when zero
	MaxDistanceKm float64 `json:"maxDistanceKm,omitempty"`

	// CandidateRegions restricts the search to the given regions,
	// defaulting to every region in the catalog
	CandidateRegions []string `json:"candidateRegions,omitempty"`
}

// ScoredRegion is a candidate region with its sustainability score.
// Lower scores are better.
type ScoredRegion struct {
	Region        string  `json:"region"`
	Zone          string  `json:"zone"`
	DistanceKm    float64 `json:"distanceKm"`
	LocationBased float64 `json:"locationBasedIntensity"`
	MarketBased   float64 `json:"marketBasedIntensity"`
	Score         float64 `json:"sustainabilityScore"`
	MarketDerived bool    `json:"marketDerived,omitempty"`
	IsEstimated   bool    `json:"isEstimated,omitempty"`
}

// UnavailableRegion is a candidate that passed filtering but produced no
// usable carbon data
type UnavailableRegion struct {
	Region     string  `json:"region"`
	DistanceKm float64 `json:"distanceKm"`
	Reason     string  `json:"reason"`
}

// Analysis summarizes how the candidate set narrowed at each stage
type Analysis struct {
	TotalRegionsEvaluated    int `json:"totalRegionsEvaluated"`
	NearbyRegionsFound       int `json:"nearbyRegionsFound"`
	ServiceCompatibleRegions int `json:"serviceCompatibleRegions"`
	DataUnavailableRegions   int `json:"dataUnavailableRegions"`
}

// Recommendation is the ranked result of a service request
type Recommendation struct {
	Outcome string         `json:"outcome"`
	Best    *ScoredRegion  `json:"recommendedRegion,omitempty"`
	Options []ScoredRegion `json:"allOptions"`

	// Services are the service identifiers the evaluation used, including
	// any extracted from a workload description
	Services []string `json:"resolvedServices,omitempty"`

	Unavailable []UnavailableRegion `json:"unavailableRegions,omitempty"`
	Analysis    Analysis            `json:"analysis"`
}
