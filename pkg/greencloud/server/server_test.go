package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud"
	carbonmock "github.com/elevated-systems/greencloud-advisor/pkg/greencloud/carbon/mock"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/ccft"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/insights"
	llmmock "github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm/mock"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/server"
)

const sampleCSV = `usage_month,location,product_code,total_mbm_emissions_value,total_lbm_emissions_value
2024-01,us-east-1,AmazonEC2,10.5,14.0
2024-01,eu-west-1,AmazonS3,2.0,3.0
2024-02,us-east-1,AmazonEC2,8.5,11.0
2024-02,eu-west-1,AmazonRDS,1.0,2.0
`

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(opts ...server.Option) *server.Server {
	cfg := config.ServerConfig{
		ListenAddr:   ":0",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	cat := catalog.New()
	source := carbonmock.New(map[string]float64{
		"eu-west-2":    220,
		"eu-central-1": 380,
		"eu-north-1":   25,
	})
	advisor := greencloud.New(&config.AdvisorConfig{MaxDistanceKm: 5000}, cat, source)

	return server.New(cfg, advisor, cat, opts...)
}

func doRequest(srv *server.Server, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	srv.ServeHTTP(rec, req)
	return rec
}

func uploadReport(t *testing.T, srv *server.Server) string {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(sampleCSV))
	req.Header.Set("Content-Type", "text/csv")
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	require.NotEmpty(t, stored.ID)
	return stored.ID
}

func TestHealthzReturns200(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzDefaultsToReady(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodGet, "/readyz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(server.WithReadinessChecker(&mockReadiness{err: fmt.Errorf("catalog not loaded")}))
	rec := doRequest(srv, http.MethodGet, "/readyz", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "catalog not loaded", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRecommendEndpoint(t *testing.T) {
	body := bytes.NewBufferString(`{
		"latitude": 51.5074,
		"longitude": -0.1278,
		"candidateRegions": ["eu-west-2", "eu-central-1", "eu-north-1"]
	}`)

	rec := doRequest(newTestServer(), http.MethodPost, "/api/v1/recommendations", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result greencloud.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, greencloud.OutcomeRecommended, result.Outcome)
	require.NotNil(t, result.Best)
	assert.Equal(t, "eu-north-1", result.Best.Region)
	assert.Len(t, result.Options, 3)
	assert.Equal(t, 3, result.Analysis.NearbyRegionsFound)
}

func TestRecommendEndpointNoViableRegion(t *testing.T) {
	body := bytes.NewBufferString(`{
		"latitude": 51.5074,
		"longitude": -0.1278,
		"maxDistanceKm": 5,
		"candidateRegions": ["eu-central-1"]
	}`)

	rec := doRequest(newTestServer(), http.MethodPost, "/api/v1/recommendations", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result greencloud.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, greencloud.OutcomeNoViableRegion, result.Outcome)
	assert.Nil(t, result.Best)
}

func TestRecommendEndpointInvalidBody(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodPost, "/api/v1/recommendations", bytes.NewBufferString("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendEndpointInvalidCoordinates(t *testing.T) {
	body := bytes.NewBufferString(`{"latitude": 200, "longitude": 0}`)

	rec := doRequest(newTestServer(), http.MethodPost, "/api/v1/recommendations", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid coordinates")
}

func TestRecommendEndpointInlineInsights(t *testing.T) {
	generator := insights.NewGenerator(llmmock.New("Consider Graviton for all compute."))
	srv := newTestServer(server.WithInsightsGenerator(generator))

	body := bytes.NewBufferString(`{
		"latitude": 51.5074,
		"longitude": -0.1278,
		"services": ["ec2"],
		"candidateRegions": ["eu-west-2", "eu-north-1"],
		"includeInsights": true
	}`)

	rec := doRequest(srv, http.MethodPost, "/api/v1/recommendations", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		greencloud.Recommendation
		Insights []insights.Insight `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, greencloud.OutcomeRecommended, result.Outcome)
	assert.Equal(t, []string{"ec2"}, result.Services)
	require.Len(t, result.Insights, 2)
	assert.Equal(t, "Programming", result.Insights[1].Type)
}

func TestRecommendEndpointInlineInsightsNotConfigured(t *testing.T) {
	body := bytes.NewBufferString(`{
		"latitude": 51.5074,
		"longitude": -0.1278,
		"services": ["ec2"],
		"candidateRegions": ["eu-north-1"],
		"includeInsights": true
	}`)

	rec := doRequest(newTestServer(), http.MethodPost, "/api/v1/recommendations", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Insights []insights.Insight `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.Len(t, result.Insights, 1)
	assert.Equal(t, "Error", result.Insights[0].Type)
	assert.Equal(t, "⚠️ AI Insights Unavailable", result.Insights[0].Title)
	assert.Equal(t, "N/A", result.Insights[0].Savings)
}

func TestRecommendEndpointInlineInsightsModelFailure(t *testing.T) {
	generator := insights.NewGenerator(llmmock.NewWithError())
	srv := newTestServer(server.WithInsightsGenerator(generator))

	body := bytes.NewBufferString(`{
		"latitude": 51.5074,
		"longitude": -0.1278,
		"services": ["ec2"],
		"candidateRegions": ["eu-north-1"],
		"includeInsights": true
	}`)

	rec := doRequest(srv, http.MethodPost, "/api/v1/recommendations", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		greencloud.Recommendation
		Insights []insights.Insight `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	// The recommendation survives, the failure is reported in-band
	assert.Equal(t, greencloud.OutcomeRecommended, result.Outcome)
	require.Len(t, result.Insights, 1)
	assert.Equal(t, "⚠️ AI Analysis Failed", result.Insights[0].Title)
	assert.Contains(t, result.Insights[0].Description, "Unable to generate AI insights")
}

func TestRegionsEndpoint(t *testing.T) {
	rec := doRequest(newTestServer(), http.MethodGet, "/api/v1/regions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Regions []struct {
			Region    string  `json:"region"`
			Zone      string  `json:"zone"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Regions)

	found := false
	for _, region := range body.Regions {
		if region.Region == "us-east-1" {
			found = true
			assert.Equal(t, "US-PJM", region.Zone)
			assert.NotZero(t, region.Latitude)
		}
	}
	assert.True(t, found, "expected us-east-1 in the region list")
}

func TestWorkloadInsightsEndpoint(t *testing.T) {
	generator := insights.NewGenerator(llmmock.New("Consider Graviton for all compute."))
	srv := newTestServer(server.WithInsightsGenerator(generator))

	body := bytes.NewBufferString(`{"services": ["ec2"], "recommendedRegion": {"region": "eu-north-1", "marketBasedIntensity": 17.5}}`)
	rec := doRequest(srv, http.MethodPost, "/api/v1/insights", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Insights []insights.Insight `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	// Unstructured reply collapses to one insight, plus the static one
	require.Len(t, result.Insights, 2)
	assert.Equal(t, "Programming", result.Insights[1].Type)
}

func TestWorkloadInsightsNotConfigured(t *testing.T) {
	body := bytes.NewBufferString(`{"services": ["ec2"]}`)
	rec := doRequest(newTestServer(), http.MethodPost, "/api/v1/insights", body)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWorkloadInsightsEmptyServices(t *testing.T) {
	generator := insights.NewGenerator(llmmock.New("unused"))
	srv := newTestServer(server.WithInsightsGenerator(generator))

	rec := doRequest(srv, http.MethodPost, "/api/v1/insights", bytes.NewBufferString(`{"services": []}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadReportCSV(t *testing.T) {
	srv := newTestServer()
	id := uploadReport(t, srv)

	rec := doRequest(srv, http.MethodGet, "/api/v1/reports/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored ccft.StoredReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, "csv", stored.Format)
	require.NotNil(t, stored.Summary)
	assert.Equal(t, 4, stored.Summary.TotalRecords)
}

func TestUploadReportMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("report", "january.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	newTestServer().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var stored ccft.StoredReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, "january.csv", stored.Name)
	assert.Equal(t, "csv", stored.Format)
}

func TestUploadReportUnsupportedContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader("plain text"))
	req.Header.Set("Content-Type", "text/plain")
	newTestServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported content type")
}

func TestUploadReportInvalidCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader("wrong,header\n1,2\n"))
	req.Header.Set("Content-Type", "text/csv")
	newTestServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required columns")
}

func TestListReports(t *testing.T) {
	srv := newTestServer()
	uploadReport(t, srv)
	uploadReport(t, srv)

	rec := doRequest(srv, http.MethodGet, "/api/v1/reports", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Reports []ccft.StoredReport `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Reports, 2)
}

func TestReportSummaryEndpoint(t *testing.T) {
	srv := newTestServer()
	id := uploadReport(t, srv)

	rec := doRequest(srv, http.MethodGet, "/api/v1/reports/"+id+"/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary ccft.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 22.0, summary.TotalMBM)
	assert.Equal(t, 30.0, summary.TotalLBM)
	assert.Equal(t, "AmazonEC2", summary.TopService)
}

func TestDeleteReport(t *testing.T) {
	srv := newTestServer()
	id := uploadReport(t, srv)

	rec := doRequest(srv, http.MethodDelete, "/api/v1/reports/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/v1/reports/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(srv, http.MethodDelete, "/api/v1/reports/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportChatEndpoint(t *testing.T) {
	chatbot := ccft.NewChatbot(llmmock.New("EC2 dominates your footprint."), 0.1)
	srv := newTestServer(server.WithChatbot(chatbot))
	id := uploadReport(t, srv)

	body := bytes.NewBufferString(`{"question": "Which service emits the most?"}`)
	rec := doRequest(srv, http.MethodPost, "/api/v1/reports/"+id+"/chat", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Answer string `json:"answer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "EC2 dominates your footprint.", response.Answer)
}

func TestReportChatEmptyQuestion(t *testing.T) {
	chatbot := ccft.NewChatbot(llmmock.New("unused"), 0.1)
	srv := newTestServer(server.WithChatbot(chatbot))
	id := uploadReport(t, srv)

	rec := doRequest(srv, http.MethodPost, "/api/v1/reports/"+id+"/chat", bytes.NewBufferString(`{"question": " "}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportChatMissingReport(t *testing.T) {
	chatbot := ccft.NewChatbot(llmmock.New("unused"), 0.1)
	srv := newTestServer(server.WithChatbot(chatbot))

	rec := doRequest(srv, http.MethodPost, "/api/v1/reports/absent/chat", bytes.NewBufferString(`{"question": "hi"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportChatNotConfigured(t *testing.T) {
	srv := newTestServer()
	id := uploadReport(t, srv)

	rec := doRequest(srv, http.MethodPost, "/api/v1/reports/"+id+"/chat", bytes.NewBufferString(`{"question": "hi"}`))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReportChatModelFailure(t *testing.T) {
	chatbot := ccft.NewChatbot(llmmock.NewWithError(), 0.1)
	srv := newTestServer(server.WithChatbot(chatbot))
	id := uploadReport(t, srv)

	rec := doRequest(srv, http.MethodPost, "/api/v1/reports/"+id+"/chat", bytes.NewBufferString(`{"question": "hi"}`))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestReportInsightsEndpoint(t *testing.T) {
	chatbot := ccft.NewChatbot(llmmock.New("Emissions fell quarter over quarter."), 0.1)
	srv := newTestServer(server.WithChatbot(chatbot))
	id := uploadReport(t, srv)

	rec := doRequest(srv, http.MethodGet, "/api/v1/reports/"+id+"/insights", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result ccft.ReportInsights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Emissions fell quarter over quarter.", result.Text)
	assert.Len(t, result.Charts, 4)
}
