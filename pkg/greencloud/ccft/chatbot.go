package ccft

import (
	"context"
	"fmt"
	"strings"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm"
)

// maxContextRecords caps how much of the dataset is sent as model context
const maxContextRecords = 200

const systemPrompt = `You are an AWS sustainability expert analyzing Customer Carbon Footprint Tool (CCFT) data.

Your role:
- Answer questions about AWS carbon emissions and sustainability
- Analyze the provided CCFT data
- Provide insights on carbon footprint optimization
- Suggest AWS regions and services for better sustainability
- Explain carbon accounting methodologies (location-based vs market-based)
- Use the AWS Well-Architected sustainability pillar to understand customer workloads and offer suggestions

Keep responses concise and actionable. Focus on sustainability insights and recommendations.`

const executiveSummaryPromptTemplate = `Generate a professional executive summary of this AWS CCFT report using the actual data provided:

Actual Data Analysis:
- Total LBM Emissions: %.2f MTCO2e
- Total MBM Emissions: %.2f MTCO2e
- Top Regions by Emissions:
%s
- Top Services by Emissions:
%s
- Date Range: %s to %s

Include:
1. Executive Overview
2. Top 3 AWS services by actual emission values
3. Regional analysis with specific numbers
4. Location-based vs market-based comparison with the percentage difference
5. Key findings from the actual data
6. Real-world equivalences such as round-trip flights, car trips, and household electricity consumption

Use professional business language with specific numbers from the data.`

// Chatbot answers questions about uploaded CCFT reports
type Chatbot struct {
	client      llm.Client
	temperature float64
}

// NewChatbot creates a chatbot backed by the given model client
func NewChatbot(client llm.Client, temperature float64) *Chatbot {
	return &Chatbot{
		client:      client,
		temperature: temperature,
	}
}

// Ask answers a question about the report, grounding the model on the
// report summary and a bounded slice of the raw records
func (c *Chatbot) Ask(ctx context.Context, report *Report, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question cannot be empty")
	}

	summary := Summarize(report)
	message := question + "\n\nCCFT Dataset:\n" + renderRecords(report.Records, maxContextRecords)

	reply, err := c.client.Converse(ctx, &llm.Request{
		System:      buildSystemPrompt(report, summary),
		Message:     message,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat response: %v", err)
	}

	return reply, nil
}

// ExecutiveSummary generates a business-level narrative of the report
func (c *Chatbot) ExecutiveSummary(ctx context.Context, report *Report) (string, error) {
	summary := Summarize(report)

	prompt := fmt.Sprintf(executiveSummaryPromptTemplate,
		summary.TotalLBM,
		summary.TotalMBM,
		formatGroupLines(summary.RegionEmissions, 5),
		formatGroupLines(summary.ServiceEmissions, 5),
		summary.DateFrom,
		summary.DateTo)

	text, err := c.client.Converse(ctx, &llm.Request{
		System:      buildSystemPrompt(report, summary),
		Message:     prompt,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate executive summary: %v", err)
	}

	return text, nil
}

// ChartData is one aggregate series for client-side visualization
type ChartData struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Series      []GroupTotal `json:"series"`
}

// ReportInsights pairs the generated executive summary with chart-ready
// aggregate series
type ReportInsights struct {
	Text   string      `json:"text"`
	Charts []ChartData `json:"charts"`
}

// Insights generates the executive summary together with the aggregate
// series behind it
func (c *Chatbot) Insights(ctx context.Context, report *Report) (*ReportInsights, error) {
	text, err := c.ExecutiveSummary(ctx, report)
	if err != nil {
		return nil, err
	}

	summary := Summarize(report)
	return &ReportInsights{
		Text: text,
		Charts: []ChartData{
			{
				Title:       "Carbon Emissions by Service",
				Description: "AWS services ranked by market-based carbon emissions.",
				Series:      summary.ServiceEmissions,
			},
			{
				Title:       "Carbon Emissions by Region",
				Description: "AWS regions ranked by market-based carbon emissions.",
				Series:      summary.RegionEmissions,
			},
			{
				Title:       "LBM vs MBM Comparison",
				Description: "Total emissions under the location-based and market-based methods.",
				Series: []GroupTotal{
					{Key: "Location-Based Method", Emissions: summary.TotalLBM},
					{Key: "Market-Based Method", Emissions: summary.TotalMBM},
				},
			},
			{
				Title:       "Monthly Emissions Trend",
				Description: "Market-based carbon emissions per usage month.",
				Series:      summary.MonthlyEmissions,
			},
		},
	}, nil
}

func buildSystemPrompt(report *Report, summary *Summary) string {
	return systemPrompt +
		"\n\nData Summary:\n" + summary.Text() +
		"\n\nSample Records:\n" + renderRecords(report.Records, 5)
}

// renderRecords renders records as CSV-style text, truncating past the limit
func renderRecords(records []Record, limit int) string {
	var b strings.Builder
	b.WriteString(strings.Join(requiredColumns, ","))

	shown := len(records)
	if shown > limit {
		shown = limit
	}
	for _, record := range records[:shown] {
		fmt.Fprintf(&b, "\n%s,%s,%s,%.6f,%.6f",
			record.UsageMonth,
			record.Location,
			record.ProductCode,
			record.MBMEmissions,
			record.LBMEmissions)
	}
	if shown < len(records) {
		fmt.Fprintf(&b, "\n... and %d more records", len(records)-shown)
	}

	return b.String()
}

func formatGroupLines(groups []GroupTotal, n int) string {
	if len(groups) < n {
		n = len(groups)
	}

	lines := make([]string, 0, n)
	for _, group := range groups[:n] {
		lines = append(lines, fmt.Sprintf("  %s: %.2f MTCO2e", group.Key, group.Emissions))
	}
	return strings.Join(lines, "\n")
}
