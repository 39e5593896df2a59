package ccft

import (
	"context"
	"strings"
	"testing"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm/mock"
)

func TestChatbotAsk(t *testing.T) {
	mockClient := mock.New("Your EC2 fleet dominates emissions.")
	chatbot := NewChatbot(mockClient, 0.1)

	reply, err := chatbot.Ask(context.Background(), testReport(), "Which service emits the most?")
	if err != nil {
		t.Fatalf("Ask() returned error: %v", err)
	}
	if reply != "Your EC2 fleet dominates emissions." {
		t.Errorf("Unexpected reply: %q", reply)
	}

	req := mockClient.LastRequest
	if req == nil {
		t.Fatal("Expected a model request to be sent")
	}
	if !strings.Contains(req.System, "sustainability expert") {
		t.Error("Expected the system prompt to carry the expert role")
	}
	if !strings.Contains(req.System, "CCFT Data Summary:") {
		t.Error("Expected the system prompt to carry the data summary")
	}
	if !strings.Contains(req.Message, "Which service emits the most?") {
		t.Error("Expected the message to carry the question")
	}
	if !strings.Contains(req.Message, "usage_month,location,product_code") {
		t.Error("Expected the message to carry the dataset")
	}
	if req.Temperature != 0.1 {
		t.Errorf("Temperature = %v, expected 0.1", req.Temperature)
	}
}

func TestChatbotAskEmptyQuestion(t *testing.T) {
	chatbot := NewChatbot(mock.New("unused"), 0.1)

	if _, err := chatbot.Ask(context.Background(), testReport(), "  "); err == nil {
		t.Error("Expected error for empty question")
	}
}

func TestChatbotAskModelError(t *testing.T) {
	chatbot := NewChatbot(mock.NewWithError(), 0.1)

	_, err := chatbot.Ask(context.Background(), testReport(), "why?")
	if err == nil {
		t.Fatal("Expected error when the model call fails")
	}
	if !strings.Contains(err.Error(), "failed to get chat response") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestChatbotExecutiveSummary(t *testing.T) {
	mockClient := mock.New("Executive overview...")
	chatbot := NewChatbot(mockClient, 0.1)

	text, err := chatbot.ExecutiveSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("ExecutiveSummary() returned error: %v", err)
	}
	if text != "Executive overview..." {
		t.Errorf("Unexpected summary: %q", text)
	}

	message := mockClient.LastRequest.Message
	for _, expected := range []string{
		"executive summary",
		"Total LBM Emissions: 30.00 MTCO2e",
		"Total MBM Emissions: 22.00 MTCO2e",
		"us-east-1: 19.00 MTCO2e",
		"Date Range: 2024-01 to 2024-02",
	} {
		if !strings.Contains(message, expected) {
			t.Errorf("Prompt missing %q:\n%s", expected, message)
		}
	}
}

func TestChatbotInsights(t *testing.T) {
	chatbot := NewChatbot(mock.New("Narrative."), 0.1)

	insights, err := chatbot.Insights(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Insights() returned error: %v", err)
	}

	if insights.Text != "Narrative." {
		t.Errorf("Unexpected text: %q", insights.Text)
	}
	if len(insights.Charts) != 4 {
		t.Fatalf("Got %d charts, expected 4", len(insights.Charts))
	}

	titles := make([]string, 0, len(insights.Charts))
	for _, chart := range insights.Charts {
		titles = append(titles, chart.Title)
	}
	expectedTitles := []string{
		"Carbon Emissions by Service",
		"Carbon Emissions by Region",
		"LBM vs MBM Comparison",
		"Monthly Emissions Trend",
	}
	for i, expected := range expectedTitles {
		if titles[i] != expected {
			t.Errorf("Chart %d titled %q, expected %q", i, titles[i], expected)
		}
	}

	comparison := insights.Charts[2].Series
	if len(comparison) != 2 || comparison[0].Emissions != 30.0 || comparison[1].Emissions != 22.0 {
		t.Errorf("Unexpected comparison series: %+v", comparison)
	}
}

func TestRenderRecordsTruncation(t *testing.T) {
	records := testReport().Records

	rendered := renderRecords(records, 2)
	if !strings.Contains(rendered, "... and 2 more records") {
		t.Errorf("Expected truncation marker, got:\n%s", rendered)
	}
	if strings.Count(rendered, "\n") != 3 {
		t.Errorf("Expected header plus two rows plus marker, got:\n%s", rendered)
	}

	full := renderRecords(records, 10)
	if strings.Contains(full, "more records") {
		t.Errorf("Did not expect truncation marker, got:\n%s", full)
	}
}
