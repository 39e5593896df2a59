package greencloud

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/carbon"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/geo"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/metrics"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/observability"
)

// ServiceExtractor derives service identifiers from a workload description
type ServiceExtractor interface {
	ExtractServices(ctx context.Context, description string) ([]string, error)
}

// Advisor recommends AWS regions for service requests
type Advisor struct {
	config    *config.AdvisorConfig
	catalog   *catalog.Catalog
	carbon    carbon.Source
	extractor ServiceExtractor
}

// AdvisorOption defines a function type for configuring the advisor
type AdvisorOption func(*Advisor)

// WithServiceExtractor enables workload descriptions on service requests
func WithServiceExtractor(extractor ServiceExtractor) AdvisorOption {
	return func(a *Advisor) {
		a.extractor = extractor
	}
}

// New creates a new advisor
func New(cfg *config.AdvisorConfig, cat *catalog.Catalog, source carbon.Source, opts ...AdvisorOption) *Advisor {
	advisor := &Advisor{
		config:  cfg,
		catalog: cat,
		carbon:  source,
	}

	for _, opt := range opts {
		opt(advisor)
	}

	return advisor
}

// candidate is a region that passed proximity and service filtering
type candidate struct {
	region   string
	distance float64
}

// Recommend evaluates the candidate regions for a request and returns them
// ranked by sustainability score. Regions without usable carbon data are
// reported as unavailable rather than failing the run; an empty result is
// the no-viable-region outcome, not an error.
func (a *Advisor) Recommend(ctx context.Context, req *ServiceRequest) (*Recommendation, error) {
	start := time.Now()

	ctx, span := observability.Tracer().Start(ctx, "advisor.Recommend")
	defer span.End()

	if req == nil {
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("request cannot be nil")
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("invalid coordinates: %f, %f", req.Latitude, req.Longitude)
	}

	services, err := a.resolveServices(ctx, req)
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	maxDistance := req.MaxDistanceKm
	if maxDistance <= 0 {
		maxDistance = a.config.MaxDistanceKm
	}

	candidates := req.CandidateRegions
	if len(candidates) == 0 {
		candidates = a.catalog.Regions()
	}

	span.SetAttributes(
		attribute.Int("request.candidates", len(candidates)),
		attribute.Int("request.services", len(services)),
		attribute.Float64("request.max_distance_km", maxDistance),
	)

	klog.V(2).InfoS("Starting recommendation",
		"candidates", len(candidates),
		"services", services,
		"maxDistanceKm", maxDistance)

	origin := geo.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude}
	eligible, analysis := a.filterCandidates(candidates, services, origin, maxDistance)

	samples, errs := a.fetchSamples(ctx, eligible)

	rec := &Recommendation{
		Options:  []ScoredRegion{},
		Services: services,
		Analysis: analysis,
	}

	for i, cand := range eligible {
		if errs[i] != nil {
			klog.V(2).InfoS("Region carbon data unavailable",
				"region", cand.region,
				"error", errs[i])
			rec.Unavailable = append(rec.Unavailable, UnavailableRegion{
				Region:     cand.region,
				DistanceKm: cand.distance,
				Reason:     ReasonDataUnavailable,
			})
			continue
		}

		sample := samples[i]
		rec.Options = append(rec.Options, ScoredRegion{
			Region:        cand.region,
			Zone:          sample.Zone,
			DistanceKm:    cand.distance,
			LocationBased: sample.LocationBased,
			MarketBased:   sample.MarketBased,
			Score:         Score(sample),
			MarketDerived: sample.MarketDerived,
			IsEstimated:   sample.IsEstimated,
		})

		metrics.RegionCarbonIntensity.WithLabelValues(cand.region, "location_based").Set(sample.LocationBased)
		metrics.RegionCarbonIntensity.WithLabelValues(cand.region, "market_based").Set(sample.MarketBased)
	}
	rec.Analysis.DataUnavailableRegions = len(rec.Unavailable)

	Rank(rec.Options)

	if len(rec.Options) > 0 {
		rec.Outcome = OutcomeRecommended
		rec.Best = &rec.Options[0]
	} else {
		rec.Outcome = OutcomeNoViableRegion
	}

	span.SetAttributes(attribute.String("recommendation.outcome", rec.Outcome))
	metrics.RecommendationRequests.WithLabelValues(rec.Outcome).Inc()
	metrics.RecommendationLatency.Observe(time.Since(start).Seconds())

	klog.V(2).InfoS("Recommendation complete",
		"outcome", rec.Outcome,
		"options", len(rec.Options),
		"unavailable", len(rec.Unavailable),
		"durationMs", time.Since(start).Milliseconds())

	return rec, nil
}

// resolveServices returns the explicit service list, deriving one from the
// workload description when necessary
func (a *Advisor) resolveServices(ctx context.Context, req *ServiceRequest) ([]string, error) {
	if len(req.Services) > 0 || req.Workload == "" {
		return req.Services, nil
	}

	if a.extractor == nil {
		return nil, fmt.Errorf("workload descriptions require a service extractor")
	}

	services, err := a.extractor.ExtractServices(ctx, req.Workload)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workload services: %v", err)
	}
	return services, nil
}

// filterCandidates applies the proximity and service availability filters,
// returning survivors ordered by distance
func (a *Advisor) filterCandidates(candidates []string, services []string, origin geo.Coordinates, maxDistanceKm float64) ([]candidate, Analysis) {
	seen := make(map[string]bool)
	var unique []string
	for _, region := range candidates {
		if !seen[region] {
			seen[region] = true
			unique = append(unique, region)
		}
	}

	analysis := Analysis{TotalRegionsEvaluated: len(unique)}

	var eligible []candidate
	for _, region := range unique {
		coords, ok := a.catalog.GetCoordinates(region)
		if !ok {
			klog.V(3).InfoS("Skipping unknown region", "region", region)
			continue
		}

		distance := geo.Distance(origin, coords)
		if distance > maxDistanceKm {
			continue
		}
		analysis.NearbyRegionsFound++

		if !a.catalog.HasAllServices(region, services) {
			klog.V(3).InfoS("Region missing required services",
				"region", region,
				"missing", a.catalog.UnavailableServices(region, services))
			continue
		}
		analysis.ServiceCompatibleRegions++

		eligible = append(eligible, candidate{region: region, distance: distance})
	}

	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].distance < eligible[j].distance
	})

	return eligible, analysis
}

// fetchSamples gathers carbon samples for all eligible regions concurrently.
// Results land in per-region slots so the join order is deterministic.
func (a *Advisor) fetchSamples(ctx context.Context, eligible []candidate) ([]*carbon.Sample, []error) {
	ctx, span := observability.Tracer().Start(ctx, "advisor.FetchCarbonData")
	defer span.End()
	span.SetAttributes(attribute.Int("regions.eligible", len(eligible)))

	samples := make([]*carbon.Sample, len(eligible))
	errs := make([]error, len(eligible))

	var wg sync.WaitGroup
	for i, cand := range eligible {
		wg.Add(1)
		go func(i int, region string) {
			defer wg.Done()
			samples[i], errs[i] = a.carbon.GetSample(ctx, region)
		}(i, cand.region)
	}
	wg.Wait()

	return samples, errs
}
