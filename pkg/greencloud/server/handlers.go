package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/ccft"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/insights"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/metrics"
)

// regionSummary is the catalog view returned by the regions endpoint
type regionSummary struct {
	Region    string  `json:"region"`
	Zone      string  `json:"zone"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// recommendationRequest extends the advisor request with transport-level
// options that do not affect the recommendation itself
type recommendationRequest struct {
	greencloud.ServiceRequest
	IncludeInsights bool `json:"includeInsights,omitempty"`
}

type recommendationResponse struct {
	*greencloud.Recommendation
	Insights []insights.Insight `json:"insights,omitempty"`
}

// insightsRequest asks for optimization insights for a set of services,
// optionally tailored to an already recommended region
type insightsRequest struct {
	Services []string                 `json:"services"`
	Best     *greencloud.ScoredRegion `json:"recommendedRegion,omitempty"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	rec, err := s.advisor.Recommend(r.Context(), &req.ServiceRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := recommendationResponse{Recommendation: rec}
	if req.IncludeInsights {
		resp.Insights = s.generateInlineInsights(r.Context(), rec)
	}

	writeJSON(w, http.StatusOK, resp)
}

// generateInlineInsights produces insights for a freshly computed
// recommendation. Failures degrade to an error insight so the
// recommendation itself still reaches the caller.
func (s *Server) generateInlineInsights(ctx context.Context, rec *greencloud.Recommendation) []insights.Insight {
	if len(rec.Services) == 0 {
		return nil
	}

	if s.insights == nil {
		return []insights.Insight{{
			Type:        "Error",
			Title:       "⚠️ AI Insights Unavailable",
			Description: "Model access is not configured. Set BEDROCK_API_KEY to enable AI insights.",
			Impact:      "Info",
			Savings:     "N/A",
		}}
	}

	start := time.Now()
	results, err := s.insights.Generate(ctx, rec.Services, rec.Best)
	metrics.LLMRequestDuration.WithLabelValues("insights").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequests.WithLabelValues("insights", "error").Inc()
		return []insights.Insight{{
			Type:        "Error",
			Title:       "⚠️ AI Analysis Failed",
			Description: fmt.Sprintf("Unable to generate AI insights: %v", err),
			Impact:      "Info",
			Savings:     "N/A",
		}}
	}
	metrics.LLMRequests.WithLabelValues("insights", "success").Inc()

	return results
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	names := s.catalog.Regions()
	result := make([]regionSummary, 0, len(names))
	for _, region := range names {
		info, ok := s.catalog.GetRegionInfo(region)
		if !ok {
			continue
		}
		result = append(result, regionSummary{
			Region:    region,
			Zone:      info.ElectricityMapsZone,
			Country:   info.Country,
			Latitude:  info.Latitude,
			Longitude: info.Longitude,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"regions": result})
}

func (s *Server) handleWorkloadInsights(w http.ResponseWriter, r *http.Request) {
	if s.insights == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("insight generation is not configured"))
		return
	}

	var req insightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}
	if len(req.Services) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("services list cannot be empty"))
		return
	}

	start := time.Now()
	results, err := s.insights.Generate(r.Context(), req.Services, req.Best)
	metrics.LLMRequestDuration.WithLabelValues("insights").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequests.WithLabelValues("insights", "error").Inc()
		writeError(w, http.StatusBadGateway, err)
		return
	}
	metrics.LLMRequests.WithLabelValues("insights", "success").Inc()

	writeJSON(w, http.StatusOK, map[string]any{"insights": results})
}

func (s *Server) handleUploadReport(w http.ResponseWriter, r *http.Request) {
	name, format, body, err := reportPayload(r)
	if err != nil {
		metrics.ReportUploads.WithLabelValues(format, "error").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer body.Close()

	report, err := parseReport(format, body)
	if err != nil {
		metrics.ReportUploads.WithLabelValues(format, "error").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	stored := s.reports.Put(name, format, report)
	metrics.ReportUploads.WithLabelValues(format, "success").Inc()

	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleListReports(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"reports": s.reports.List()})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	stored, found := s.reports.Get(r.PathValue("id"))
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("report not found"))
		return
	}

	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	stored, found := s.reports.Get(r.PathValue("id"))
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("report not found"))
		return
	}

	writeJSON(w, http.StatusOK, stored.Summary)
}

func (s *Server) handleReportChat(w http.ResponseWriter, r *http.Request) {
	if s.chatbot == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("report chat is not configured"))
		return
	}

	stored, found := s.reports.Get(r.PathValue("id"))
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("report not found"))
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("question cannot be empty"))
		return
	}

	start := time.Now()
	reply, err := s.chatbot.Ask(r.Context(), stored.Report, req.Question)
	metrics.LLMRequestDuration.WithLabelValues("chat").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequests.WithLabelValues("chat", "error").Inc()
		writeError(w, http.StatusBadGateway, err)
		return
	}
	metrics.LLMRequests.WithLabelValues("chat", "success").Inc()

	writeJSON(w, http.StatusOK, chatResponse{Answer: reply})
}

func (s *Server) handleReportInsights(w http.ResponseWriter, r *http.Request) {
	if s.chatbot == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("report insights are not configured"))
		return
	}

	stored, found := s.reports.Get(r.PathValue("id"))
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("report not found"))
		return
	}

	start := time.Now()
	result, err := s.chatbot.Insights(r.Context(), stored.Report)
	metrics.LLMRequestDuration.WithLabelValues("summary").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequests.WithLabelValues("summary", "error").Inc()
		writeError(w, http.StatusBadGateway, err)
		return
	}
	metrics.LLMRequests.WithLabelValues("summary", "success").Inc()

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if !s.reports.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, fmt.Errorf("report not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// reportPayload resolves the uploaded report's name, format, and content
// from either a multipart form or a raw request body
func reportPayload(r *http.Request) (string, string, io.ReadCloser, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("report")
		if err != nil {
			return "", "unknown", nil, fmt.Errorf("missing report file: %v", err)
		}

		format, err := formatFromName(header.Filename)
		if err != nil {
			file.Close()
			return header.Filename, "unknown", nil, err
		}
		return header.Filename, format, file, nil
	}

	switch {
	case strings.HasPrefix(contentType, "text/csv"):
		return "report.csv", "csv", r.Body, nil
	case strings.HasPrefix(contentType, "application/json"):
		return "report.json", "json", r.Body, nil
	}

	return "", "unknown", nil, fmt.Errorf("unsupported content type: %q", contentType)
}

// formatFromName derives the report format from the uploaded file name
func formatFromName(name string) (string, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return "csv", nil
	case ".json":
		return "json", nil
	}

	return "", fmt.Errorf("unsupported report format: %s", name)
}

func parseReport(format string, body io.Reader) (*ccft.Report, error) {
	if format == "json" {
		return ccft.ParseJSON(body)
	}
	return ccft.ParseCSV(body)
}
