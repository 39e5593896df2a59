// Package workload extracts AWS service requirements from free-text
// workload descriptions.
package workload

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/llm"
)

const extractMaxTokens = 200

const extractPromptTemplate = `Extract all AWS services mentioned in this workload description. Return only the service names in lowercase, separated by commas.

For specific instance types like "g6.4xlarge", return as "ec2 g6.4xlarge".
For RDS engines like "MySQL", return as "rds mysql".

Workload description: %s

Return format: service1, service2, service3`

// Extractor turns workload descriptions into service identifiers the
// region catalog understands
type Extractor struct {
	client llm.Client
}

// NewExtractor creates a new workload service extractor
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// ExtractServices asks the model which AWS services a workload description
// mentions and returns them as normalized service identifiers
func (e *Extractor) ExtractServices(ctx context.Context, description string) ([]string, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("workload description cannot be empty")
	}

	response, err := e.client.Converse(ctx, &llm.Request{
		Message:   fmt.Sprintf(extractPromptTemplate, description),
		MaxTokens: extractMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract services: %v", err)
	}

	services := parseServices(response)
	klog.V(2).InfoS("Extracted services from workload description",
		"count", len(services),
		"services", services)

	return services, nil
}

// parseServices splits the comma-separated model response into cleaned
// lowercase service names
func parseServices(response string) []string {
	var services []string
	for _, part := range strings.Split(response, ",") {
		service := strings.ToLower(strings.TrimSpace(part))
		if service != "" {
			services = append(services, service)
		}
	}
	return services
}
