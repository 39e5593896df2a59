package insights

import (
	"context"
	"strings"
	"testing"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm/mock"
)

const structuredReply = `🚀 Compute Optimization
Migrate EC2 instances to c8g Graviton equivalents.
Impact: High | Savings: 15-25%

⚡ Serverless Migration
Use Lambda for event-driven work.
Runs only when triggered.
Impact: Medium | Savings: 30-50%`

func testBestRegion() *greencloud.ScoredRegion {
	return &greencloud.ScoredRegion{
		Region:      "eu-north-1",
		Zone:        "SE",
		MarketBased: 8.4,
	}
}

func TestGenerate(t *testing.T) {
	mockClient := mock.New(structuredReply)
	generator := NewGenerator(mockClient)

	results, err := generator.Generate(context.Background(), []string{"ec2 g6.4xlarge", "s3"}, testBestRegion())
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	// Two parsed recommendations plus the static language one
	if len(results) != 3 {
		t.Fatalf("Got %d insights, expected 3", len(results))
	}

	first := results[0]
	if first.Title != "🚀 Compute Optimization" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Type != "Optimization" {
		t.Errorf("Type = %q, expected Optimization", first.Type)
	}
	if first.Description != "Migrate EC2 instances to c8g Graviton equivalents." {
		t.Errorf("Description = %q", first.Description)
	}
	if first.Impact != "High" || first.Savings != "15-25%" {
		t.Errorf("Impact/Savings = %q/%q", first.Impact, first.Savings)
	}

	second := results[1]
	if second.Description != "Use Lambda for event-driven work. Runs only when triggered." {
		t.Errorf("Expected description lines joined with spaces, got %q", second.Description)
	}

	last := results[2]
	if last.Type != "Programming" || last.Impact != "Medium" {
		t.Errorf("Expected static programming insight last, got %+v", last)
	}
	if !strings.Contains(last.Description, "sustainability-with-rust") {
		t.Errorf("Programming insight missing blog link: %q", last.Description)
	}

	req := mockClient.LastRequest
	if req.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, expected 1000", req.MaxTokens)
	}
	if !strings.Contains(req.Message, "ec2 g6.4xlarge s3") {
		t.Error("Prompt missing workload description")
	}
	if !strings.Contains(req.Message, "eu-north-1 with 8.4 gCO2eq/kWh") {
		t.Errorf("Prompt missing region info:\n%s", req.Message)
	}
}

func TestGenerateEmptyServices(t *testing.T) {
	mockClient := mock.New("unused")
	generator := NewGenerator(mockClient)

	results, err := generator.Generate(context.Background(), nil, testBestRegion())
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no insights for empty services, got %d", len(results))
	}
	if mockClient.LastRequest != nil {
		t.Error("Expected no model call for empty services")
	}
}

func TestGenerateNilBestRegion(t *testing.T) {
	mockClient := mock.New(structuredReply)
	generator := NewGenerator(mockClient)

	if _, err := generator.Generate(context.Background(), []string{"s3"}, nil); err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}
	if !strings.Contains(mockClient.LastRequest.Message, "Unknown with 0.0 gCO2eq/kWh") {
		t.Error("Expected placeholder region info when no region is recommended")
	}
}

func TestGenerateModelError(t *testing.T) {
	generator := NewGenerator(mock.NewWithError())

	_, err := generator.Generate(context.Background(), []string{"s3"}, testBestRegion())
	if err == nil {
		t.Fatal("Expected error when the model call fails")
	}
	if !strings.Contains(err.Error(), "failed to generate insights") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestGenerateUnstructuredReply(t *testing.T) {
	generator := NewGenerator(mock.New("Consider Graviton instances for all compute."))

	results, err := generator.Generate(context.Background(), []string{"ec2"}, testBestRegion())
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	// Whole reply preserved as a single insight, plus the static one
	if len(results) != 2 {
		t.Fatalf("Got %d insights, expected 2", len(results))
	}
	if results[0].Type != "AI" {
		t.Errorf("Type = %q, expected AI", results[0].Type)
	}
	if results[0].Description != "Consider Graviton instances for all compute." {
		t.Errorf("Description = %q", results[0].Description)
	}
}

func TestParseRecommendationsImpactVariants(t *testing.T) {
	text := "💾 Storage Tiering\nMove cold data to Glacier.\nImpact: Low"

	results := parseRecommendations(text)
	if len(results) != 1 {
		t.Fatalf("Got %d recommendations, expected 1", len(results))
	}
	if results[0].Impact != "Low" {
		t.Errorf("Impact = %q, expected Low", results[0].Impact)
	}
	if results[0].Savings != "Variable" {
		t.Errorf("Savings = %q, expected default Variable", results[0].Savings)
	}
}

func TestIsTitleLine(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"🚀 Compute Optimization", true},
		{"⚡ Serverless Migration", true},
		{"Impact: High | Savings: 15-25%", false},
		{"Migrate to Graviton instances.", false},
		{"", false},
		{"abc🚀 too far in", false},
	}

	for _, tt := range tests {
		if got := isTitleLine(tt.line); got != tt.expected {
			t.Errorf("isTitleLine(%q) = %v, expected %v", tt.line, got, tt.expected)
		}
	}
}
