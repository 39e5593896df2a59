// Package catalog provides lookup functionality for AWS regions: datacenter
// coordinates, carbon intensity zones, and per-region service availability.
package catalog

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

// Config contains configuration for the catalog
type Config struct {
	// RegionOverrides allows overriding the default mappings
	RegionOverrides []RegionOverride `yaml:"regionOverrides"`

	// DefaultElectricityMapsZone is the fallback zone when mapping cannot be determined
	DefaultElectricityMapsZone string `yaml:"defaultElectricityMapsZone"`

	// RegionalServices replaces the offerings of the regions it names,
	// typically parsed from an AWS Regional Product Services export with
	// ParseRegionalServices
	RegionalServices map[string][]string `yaml:"-"`
}

// RegionOverride defines a custom mapping for a specific cloud region
type RegionOverride struct {
	// Region is the cloud region identifier
	Region string `yaml:"region"`

	// ElectricityMapsZone is the Electricity Maps zone to use
	ElectricityMapsZone string `yaml:"electricityMapsZone"`

	// Latitude of the region's datacenter location
	Latitude float64 `yaml:"latitude"`

	// Longitude of the region's datacenter location
	Longitude float64 `yaml:"longitude"`

	// TimeZone is the time zone to use
	TimeZone string `yaml:"timeZone"`

	// Services overrides the service offerings for this region
	Services map[string][]string `yaml:"services"`
}
