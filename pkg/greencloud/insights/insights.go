// Package insights generates sustainability optimization recommendations
// for a planned workload.
package insights

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm"
)

const insightsMaxTokens = 1000

const insightsPromptTemplate = `Analyze this AWS workload and provide 3-4 specific sustainability optimization recommendations:

Workload: %s
Current Region: %s
Services List: %s

For each recommendation, suggest specific AWS services focusing on:
1. **Graviton processors**: Always recommend LATEST Graviton instances (c8g, r8g, m8g series) available in %s. Compare current instances like c6i.8xlarge, r7i.8xlarge to c8g.8xlarge, r8g.8xlarge. Provide specific cost and performance savings.
2. **Trainium/Inferentia**: For ML workloads, recommend trn1, inf2 instances. Compare p4 GPU instances to Trainium alternatives.
3. **Serverless alternatives**: Lambda, Fargate, Aurora Serverless where applicable.

Provide recommendations in this exact format:
🚀 Compute Optimization
Migrate to latest Graviton-based instances for better price-performance and lower carbon footprint.
Impact: High | Savings: 15-25%%

⚡ Serverless Migration
Replace always-on EC2 instances with Lambda functions for event-driven workloads.
Impact: Medium | Savings: 30-50%%

Provide 3-4 similar recommendations with emojis, titles, descriptions, and impact/savings estimates.`

// Insight is one optimization recommendation for a workload
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Savings     string `json:"savings"`
}

// Generator produces workload optimization insights from a model
type Generator struct {
	client llm.Client
}

// NewGenerator creates a new insights generator
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate asks the model for optimization recommendations tailored to the
// given services and the recommended region. An empty service list yields
// no insights and no model call.
func (g *Generator) Generate(ctx context.Context, services []string, best *greencloud.ScoredRegion) ([]Insight, error) {
	if len(services) == 0 {
		return nil, nil
	}

	regionName := "Unknown"
	var marketIntensity float64
	if best != nil {
		regionName = best.Region
		marketIntensity = best.MarketBased
	}
	regionInfo := fmt.Sprintf("%s with %.1f gCO2eq/kWh", regionName, marketIntensity)

	prompt := fmt.Sprintf(insightsPromptTemplate,
		strings.Join(services, " "),
		regionInfo,
		strings.Join(services, ", "),
		regionInfo)

	reply, err := g.client.Converse(ctx, &llm.Request{
		Message:   prompt,
		MaxTokens: insightsMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights: %v", err)
	}

	results := parseRecommendations(reply)
	if len(results) == 0 {
		// Unstructured replies are still useful, keep them whole
		results = []Insight{{
			Type:        "AI",
			Title:       "🤖 AI Recommendations",
			Description: reply,
			Impact:      "High",
			Savings:     "Variable",
		}}
	}
	results = append(results, programmingLanguageInsight())

	klog.V(2).InfoS("Generated sustainability insights",
		"services", len(services),
		"insights", len(results))

	return results, nil
}

// parseRecommendations parses the structured model reply. Each
// recommendation is an emoji-led title line, description lines, and an
// "Impact: ... | Savings: ..." line.
func parseRecommendations(text string) []Insight {
	var results []Insight
	var current *Insight

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isTitleLine(line):
			if current != nil {
				results = append(results, *current)
			}
			current = &Insight{
				Type:    "Optimization",
				Title:   line,
				Savings: "Variable",
			}
		case strings.HasPrefix(line, "Impact:"):
			if current == nil {
				continue
			}
			parts := strings.Split(line, "|")
			current.Impact = strings.TrimSpace(strings.TrimPrefix(parts[0], "Impact:"))
			if len(parts) >= 2 {
				current.Savings = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[1]), "Savings:"))
			}
		case current != nil:
			if current.Description != "" {
				current.Description += " "
			}
			current.Description += line
		}
	}

	if current != nil {
		results = append(results, *current)
	}
	return results
}

// isTitleLine reports whether the line opens a new recommendation. Titles
// lead with an emoji, so a non-ASCII rune among the first few characters
// marks one.
func isTitleLine(line string) bool {
	if strings.HasPrefix(line, "Impact:") {
		return false
	}

	checked := 0
	for _, r := range line {
		if r > unicode.MaxASCII {
			return true
		}
		checked++
		if checked >= 3 {
			break
		}
	}
	return false
}

// programmingLanguageInsight applies to any workload, so it is always
// appended to the generated set
func programmingLanguageInsight() Insight {
	return Insight{
		Type:        "Programming",
		Title:       "🚀 Programming Language recommendation",
		Description: "Use energy efficient programming languages like C, Rust, C++, Ada, Java. Refer this blog https://aws.amazon.com/blogs/opensource/sustainability-with-rust/ for more detail",
		Impact:      "Medium",
		Savings:     "Variable",
	}
}
