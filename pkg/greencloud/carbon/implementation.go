// Package carbon turns AWS regions into carbon intensity samples by
// combining catalog zone lookups with the Electricity Maps API.
package carbon

import (
	"context"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/api"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/metrics"
)

// MarketDerivationFactor approximates market-based intensity from the
// location-based value when the API does not report one. Purchased renewable
// contracts put the market-based factor below the grid average.
const MarketDerivationFactor = 0.7

// Sample is one region's carbon intensity reading
type Sample struct {
	// Region is the AWS region the sample applies to
	Region string

	// Zone is the Electricity Maps zone the reading came from
	Zone string

	// LocationBased is the grid-average intensity in gCO2eq/kWh
	LocationBased float64

	// MarketBased is the contract-adjusted intensity in gCO2eq/kWh
	MarketBased float64

	// MarketDerived indicates MarketBased was derived from LocationBased
	// rather than reported by the API
	MarketDerived bool

	// IsEstimated indicates the reading is a model estimate
	IsEstimated bool

	// Timestamp of the reading
	Timestamp time.Time
}

// Source defines the interface for carbon intensity sampling
type Source interface {
	// GetSample returns the current carbon sample for an AWS region
	GetSample(ctx context.Context, region string) (*Sample, error)
}

type carbonSource struct {
	config  *config.AdvisorConfig
	catalog *catalog.Catalog
	client  *api.Client
}

// New creates a new carbon source
func New(cfg *config.AdvisorConfig, cat *catalog.Catalog, apiClient *api.Client) Source {
	return &carbonSource{
		config:  cfg,
		catalog: cat,
		client:  apiClient,
	}
}

func (c *carbonSource) GetSample(ctx context.Context, region string) (*Sample, error) {
	zone, ok := c.catalog.GetElectricityMapsZone(region)
	if !ok {
		return nil, fmt.Errorf("no carbon zone mapping for region %s", region)
	}

	klog.V(3).InfoS("Fetching carbon intensity data",
		"region", region,
		"zone", zone)

	// The API client will check cache first and only make a request if needed
	data, err := c.client.GetCarbonIntensity(ctx, zone)
	if err != nil {
		if c.config.StaticFallback {
			if sample, found := staticSample(region, zone); found {
				klog.V(2).InfoS("Using static fallback intensity",
					"region", region,
					"zone", zone,
					"locationBased", sample.LocationBased)
				metrics.CarbonFetches.WithLabelValues("static_fallback").Inc()
				return sample, nil
			}
		}
		klog.V(2).InfoS("Failed to get carbon intensity data",
			"region", region,
			"zone", zone,
			"error", err)
		metrics.CarbonFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to get carbon intensity data: %v", err)
	}

	metrics.CarbonFetches.WithLabelValues("success").Inc()
	return newSample(region, data), nil
}

// newSample converts an API reading into a per-region sample, deriving the
// market-based value when the API does not report one
func newSample(region string, data *api.CarbonIntensityData) *Sample {
	sample := &Sample{
		Region:        region,
		Zone:          data.Zone,
		LocationBased: data.CarbonIntensity,
		MarketBased:   data.MarketCarbonIntensity,
		IsEstimated:   data.IsEstimated,
		Timestamp:     data.Timestamp,
	}

	if !data.HasMarketData {
		sample.MarketBased = data.CarbonIntensity * MarketDerivationFactor
		sample.MarketDerived = true
	}

	return sample
}
