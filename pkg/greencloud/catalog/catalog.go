package catalog

import (
	"sort"
	"strings"

	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog/regions"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/geo"
)

// gpuFamilies are EC2 instance families tracked with per-size availability
var gpuFamilies = []string{"g6", "g5"}

// Catalog provides lookup functionality for AWS regions
type Catalog struct {
	config *Config

	// Maps region IDs to region info
	regionMap map[string]RegionInfo

	// Maps region IDs to their service offerings
	serviceMap map[string]map[string][]string

	// Maps region IDs to Electricity Maps zones for quick lookup
	zoneMap map[string]string
}

// New creates a catalog with default region and service mappings
func New() *Catalog {
	c := &Catalog{
		config: &Config{
			DefaultElectricityMapsZone: "DE",
		},
		zoneMap: make(map[string]string),
	}

	// Initialize with default region mappings
	c.initDefaultMappings()

	return c
}

// NewWithConfig creates a catalog with the provided configuration
func NewWithConfig(config *Config) *Catalog {
	c := New()

	// Update with provided configuration
	if config != nil {
		if config.DefaultElectricityMapsZone != "" {
			c.config.DefaultElectricityMapsZone = config.DefaultElectricityMapsZone
		}

		// Bulk service data first, then per-region overrides win
		if len(config.RegionalServices) > 0 {
			c.ApplyRegionalServices(config.RegionalServices)
		}
		c.applyRegionOverrides(config.RegionOverrides)
	}

	return c
}

// initDefaultMappings initializes the catalog with default region mappings
func (c *Catalog) initDefaultMappings() {
	// Copy region data from the regions package
	c.regionMap = convertRegionMap(regions.AWSRegionInfo)

	c.serviceMap = make(map[string]map[string][]string, len(regions.AWSRegionalServices))
	for region, services := range regions.AWSRegionalServices {
		c.serviceMap[region] = services
	}

	// Populate zone lookup map
	for region, info := range c.regionMap {
		c.zoneMap[region] = info.ElectricityMapsZone
	}

	klog.V(2).InfoS("Region catalog initialized",
		"regions", len(c.regionMap),
		"regionsWithServiceData", len(c.serviceMap))
}

// convertRegionMap converts from the regions package format to our internal format
func convertRegionMap(sourceMap map[string]regions.RegionInfo) map[string]RegionInfo {
	result := make(map[string]RegionInfo, len(sourceMap))

	for k, v := range sourceMap {
		result[k] = RegionInfo{
			ElectricityMapsZone: v.ElectricityMapsZone,
			Latitude:            v.Latitude,
			Longitude:           v.Longitude,
			TimeZone:            v.TimeZone,
			Country:             v.Country,
			CloudProvider:       v.CloudProvider,
			CloudRegion:         v.CloudRegion,
			Metadata:            v.Metadata,
		}
	}

	return result
}

// applyRegionOverrides applies custom region mappings from configuration
func (c *Catalog) applyRegionOverrides(overrides []RegionOverride) {
	for _, override := range overrides {
		region := override.Region
		if region == "" {
			klog.V(2).InfoS("Ignoring region override without a region identifier")
			continue
		}

		// Start from the existing entry so partial overrides keep known values
		info := c.regionMap[region]
		info.CloudProvider = "aws"
		info.CloudRegion = region

		if override.ElectricityMapsZone != "" {
			info.ElectricityMapsZone = override.ElectricityMapsZone
		}
		if override.Latitude != 0 || override.Longitude != 0 {
			info.Latitude = override.Latitude
			info.Longitude = override.Longitude
		}
		if override.TimeZone != "" {
			info.TimeZone = override.TimeZone
		}

		c.regionMap[region] = info
		c.zoneMap[region] = info.ElectricityMapsZone

		if override.Services != nil {
			c.serviceMap[region] = override.Services
		}

		klog.V(2).InfoS("Applied region override",
			"region", region,
			"electricityMapsZone", info.ElectricityMapsZone)
	}
}

// GetRegionInfo returns detailed information for an AWS region
func (c *Catalog) GetRegionInfo(region string) (*RegionInfo, bool) {
	info, found := c.regionMap[region]

	if !found {
		// Try prefix matching for local zones and subregions
		for knownRegion, regionInfo := range c.regionMap {
			if strings.HasPrefix(region, knownRegion) {
				info = regionInfo
				found = true
				break
			}
		}
	}

	if found {
		result := info // Make a copy to avoid modifying the map entry
		return &result, true
	}

	return nil, false
}

// GetElectricityMapsZone returns the Electricity Maps zone for an AWS region
func (c *Catalog) GetElectricityMapsZone(region string) (string, bool) {
	// Check direct mapping first (most efficient)
	if zone, found := c.zoneMap[region]; found {
		return zone, true
	}

	// Try prefix matching for local zones and subregions
	for regPrefix, zone := range c.zoneMap {
		if strings.HasPrefix(region, regPrefix) {
			return zone, true
		}
	}

	// If no mapping is found, use the default
	if c.config.DefaultElectricityMapsZone != "" {
		klog.V(3).InfoS("Using default Electricity Maps zone for region",
			"region", region,
			"zone", c.config.DefaultElectricityMapsZone)
		return c.config.DefaultElectricityMapsZone, true
	}

	return "", false
}

// GetCoordinates returns the datacenter coordinates for an AWS region
func (c *Catalog) GetCoordinates(region string) (geo.Coordinates, bool) {
	info, found := c.GetRegionInfo(region)
	if !found {
		return geo.Coordinates{}, false
	}

	return geo.Coordinates{Latitude: info.Latitude, Longitude: info.Longitude}, true
}

// Regions returns all known region identifiers in sorted order
func (c *Catalog) Regions() []string {
	result := make([]string, 0, len(c.regionMap))
	for region := range c.regionMap {
		result = append(result, region)
	}
	sort.Strings(result)

	return result
}

// ServiceAvailable reports whether a service request such as "ec2 g6.4xlarge",
// "rds aurora", or "s3" can be satisfied in the given region. Regions without
// specific service data fall back to the default offering set.
func (c *Catalog) ServiceAvailable(region, request string) bool {
	offerings, found := c.serviceMap[region]
	if !found {
		offerings = regions.DefaultAWSServices
	}

	request = strings.ToLower(strings.TrimSpace(request))
	if request == "" {
		return false
	}

	// GPU instance families are tracked per size
	for _, family := range gpuFamilies {
		if !strings.Contains(request, family) {
			continue
		}

		instances, hasFamily := offerings["ec2-"+family]
		if !hasFamily {
			return false
		}
		if instanceType := requestedInstanceType(request, family); instanceType != "" {
			return containsString(instances, instanceType)
		}
		return true
	}

	switch {
	case strings.Contains(request, "ec2"):
		_, ok := offerings["ec2"]
		return ok
	case strings.Contains(request, "rds"):
		if strings.Contains(request, "aurora") {
			return containsString(offerings["rds"], "aurora")
		}
		_, ok := offerings["rds"]
		return ok
	case strings.Contains(request, "redshift"):
		if strings.Contains(request, "serverless") {
			return containsString(offerings["redshift"], "serverless")
		}
		_, ok := offerings["redshift"]
		return ok
	}

	// Default check on the leading service name
	_, ok := offerings[strings.Fields(request)[0]]
	return ok
}

// UnavailableServices returns the requested services that are not available
// in the given region
func (c *Catalog) UnavailableServices(region string, requests []string) []string {
	var unavailable []string
	for _, request := range requests {
		if !c.ServiceAvailable(region, request) {
			unavailable = append(unavailable, request)
		}
	}

	return unavailable
}

// HasAllServices reports whether every requested service is available in the
// given region. An empty request list is trivially satisfied.
func (c *Catalog) HasAllServices(region string, requests []string) bool {
	return len(c.UnavailableServices(region, requests)) == 0
}

// requestedInstanceType extracts an explicit instance type like "g6.4xlarge"
// from a service request, or returns "" when only the family is named
func requestedInstanceType(request, family string) string {
	for _, field := range strings.Fields(request) {
		if strings.HasPrefix(field, family+".") {
			return field
		}
	}

	return ""
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}

	return false
}
