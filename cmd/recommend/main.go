package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/api"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/cache"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/carbon"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/workload"
)

func main() {
	var (
		lat          float64
		lon          float64
		services     stringSlice
		regions      stringSlice
		workloadDesc string
		maxDistance  float64
		timeout      time.Duration
		jsonOutput   bool
	)

	flag.Float64Var(&lat, "lat", 0, "Latitude of the workload origin")
	flag.Float64Var(&lon, "lon", 0, "Longitude of the workload origin")
	flag.Var(&services, "service", "Required service (can be specified multiple times)")
	flag.Var(&regions, "region", "Candidate region (can be specified multiple times, defaults to all)")
	flag.StringVar(&workloadDesc, "workload", "", "Free-text workload description (requires BEDROCK_API_KEY)")
	flag.Float64Var(&maxDistance, "max-distance", 0, "Search radius in km (defaults to MAX_DISTANCE_KM)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Overall request timeout")
	flag.BoolVar(&jsonOutput, "json", false, "Print the recommendation as JSON")
	klog.InitFlags(nil)
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		klog.ErrorS(err, "Failed to load configuration")
		os.Exit(1)
	}

	cat := catalog.NewWithConfig(&cfg.Catalog)
	apiClient := api.NewClient(cfg.API, cfg.Cache,
		api.WithCache(cache.New(cfg.Cache.CacheTTL, cfg.Cache.MaxCacheAge)))
	source := carbon.New(&cfg.Advisor, cat, apiClient)

	var opts []greencloud.AdvisorOption
	if workloadDesc != "" {
		if cfg.LLM.APIKey == "" {
			klog.ErrorS(nil, "Workload descriptions require BEDROCK_API_KEY")
			os.Exit(1)
		}
		opts = append(opts, greencloud.WithServiceExtractor(workload.NewExtractor(llm.New(cfg.LLM))))
	}

	advisor := greencloud.New(&cfg.Advisor, cat, source, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	rec, err := advisor.Recommend(ctx, &greencloud.ServiceRequest{
		Services:         services,
		Workload:         workloadDesc,
		Latitude:         lat,
		Longitude:        lon,
		MaxDistanceKm:    maxDistance,
		CandidateRegions: regions,
	})
	if err != nil {
		klog.ErrorS(err, "Recommendation failed")
		os.Exit(1)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			klog.ErrorS(err, "Failed to encode recommendation")
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	printRecommendation(rec)
}

func printRecommendation(rec *greencloud.Recommendation) {
	if rec.Outcome == greencloud.OutcomeNoViableRegion {
		fmt.Println("No viable region found. Widen the search radius or relax the service requirements.")
		printAnalysis(rec.Analysis)
		return
	}

	best := rec.Best
	fmt.Printf("🌍 Recommended region: %s (score %.2f, %.0f km away)\n", best.Region, best.Score, best.DistanceKm)
	fmt.Printf("   Location-based intensity: %.1f gCO2eq/kWh\n", best.LocationBased)
	fmt.Printf("   Market-based intensity:   %.1f gCO2eq/kWh\n\n", best.MarketBased)

	fmt.Println("All options:")
	for i, option := range rec.Options {
		fmt.Printf("  %d. %-16s score %8.2f  %6.0f km\n", i+1, option.Region, option.Score, option.DistanceKm)
	}
	for _, unavailable := range rec.Unavailable {
		fmt.Printf("  -  %-16s %s\n", unavailable.Region, unavailable.Reason)
	}

	fmt.Println()
	printAnalysis(rec.Analysis)
}

func printAnalysis(analysis greencloud.Analysis) {
	fmt.Printf("Evaluated %d regions: %d nearby, %d with required services, %d without carbon data\n",
		analysis.TotalRegionsEvaluated,
		analysis.NearbyRegionsFound,
		analysis.ServiceCompatibleRegions,
		analysis.DataUnavailableRegions)
}

// stringSlice implements flag.Value for repeated string flags
type stringSlice []string

func (s *stringSlice) String() string {
	return fmt.Sprintf("%v", *s)
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}
