// Package mock provides carbon.Source implementations for testing.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/carbon"
)

// MockCarbon implements the carbon.Source interface for testing
type MockCarbon struct {
	intensities map[string]float64
	errorMode   bool
}

// New creates a mock source returning the given location-based intensity per
// region, with the market-based value derived the way the real source does
func New(intensities map[string]float64) carbon.Source {
	return &MockCarbon{intensities: intensities}
}

// NewWithError creates a mock source that fails every lookup
func NewWithError() carbon.Source {
	return &MockCarbon{errorMode: true}
}

// GetSample returns the configured mock sample
func (m *MockCarbon) GetSample(ctx context.Context, region string) (*carbon.Sample, error) {
	if m.errorMode {
		return nil, fmt.Errorf("carbon API error (mock)")
	}

	intensity, found := m.intensities[region]
	if !found {
		return nil, fmt.Errorf("no mock intensity for region %s", region)
	}

	return &carbon.Sample{
		Region:        region,
		Zone:          region,
		LocationBased: intensity,
		MarketBased:   intensity * carbon.MarketDerivationFactor,
		MarketDerived: true,
		Timestamp:     time.Now(),
	}, nil
}

// MockCarbonSource is another mock implementation that provides more control for tests
type MockCarbonSource struct {
	GetSampleFunc func(ctx context.Context, region string) (*carbon.Sample, error)
}

// GetSample delegates to the mock function
func (m *MockCarbonSource) GetSample(ctx context.Context, region string) (*carbon.Sample, error) {
	if m.GetSampleFunc != nil {
		return m.GetSampleFunc(ctx, region)
	}
	return nil, nil
}
