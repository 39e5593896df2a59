package regions

// RegionInfo contains metadata about a cloud region
type RegionInfo struct {
	// ElectricityMapsZone is the corresponding zone ID in Electricity Maps API
	ElectricityMapsZone string

	// Latitude of the region's primary datacenter location
	Latitude float64

	// Longitude of the region's primary datacenter location
	Longitude float64

	// TimeZone for this region
	TimeZone string

	// Country code for this region
	Country string

	// CloudProvider is the name of the cloud provider (aws)
	CloudProvider string

	// CloudRegion is the region identifier in the cloud provider
	CloudRegion string

	// Additional metadata as needed
	Metadata map[string]string
}
