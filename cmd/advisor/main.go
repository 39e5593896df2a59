package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/api"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/cache"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/carbon"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/ccft"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/insights"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/observability"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/server"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/workload"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		klog.ErrorS(err, "Failed to load configuration")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv())
	if err != nil {
		klog.ErrorS(err, "Failed to initialize tracing")
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing)

	cat := catalog.NewWithConfig(&cfg.Catalog)

	apiClient := api.NewClient(cfg.API, cfg.Cache,
		api.WithCache(cache.New(cfg.Cache.CacheTTL, cfg.Cache.MaxCacheAge)))
	source := carbon.New(&cfg.Advisor, cat, apiClient)

	var advisorOpts []greencloud.AdvisorOption
	var serverOpts []server.Option

	if cfg.LLM.APIKey != "" {
		model := llm.New(cfg.LLM)
		advisorOpts = append(advisorOpts,
			greencloud.WithServiceExtractor(workload.NewExtractor(model)))
		serverOpts = append(serverOpts,
			server.WithChatbot(ccft.NewChatbot(model, cfg.LLM.Temperature)),
			server.WithInsightsGenerator(insights.NewGenerator(model)))
		klog.InfoS("Model features enabled", "model", cfg.LLM.Model)
	} else {
		klog.InfoS("Model features disabled, no API key configured")
	}

	advisor := greencloud.New(&cfg.Advisor, cat, source, advisorOpts...)
	srv := server.New(cfg.Server, advisor, cat, serverOpts...)

	klog.InfoS("Starting greencloud advisor",
		"addr", cfg.Server.ListenAddr,
		"regions", len(cat.Regions()),
		"maxDistanceKm", cfg.Advisor.MaxDistanceKm)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.ErrorS(err, "HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	klog.InfoS("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		klog.ErrorS(err, "HTTP server shutdown failed")
	}

	klog.InfoS("Shutdown complete")
}
