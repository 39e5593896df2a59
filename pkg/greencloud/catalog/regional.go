package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"k8s.io/klog/v2"
)

// regionalServicesDocument is the JSON layout of AWS Regional Product
// Services exports: a list of regions, each with its service display names
type regionalServicesDocument struct {
	Regions []struct {
		Code     string   `json:"code"`
		Services []string `json:"services"`
	} `json:"regions"`
}

// ParseRegionalServices reads an AWS Regional Product Services JSON document
// and returns service names per region, lowercased. Regions without a code
// are skipped.
func ParseRegionalServices(r io.Reader) (map[string][]string, error) {
	var doc regionalServicesDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse regional services data: %v", err)
	}

	result := make(map[string][]string, len(doc.Regions))
	for _, region := range doc.Regions {
		if region.Code == "" {
			klog.V(2).InfoS("Skipping regional services entry without a region code")
			continue
		}

		services := make([]string, 0, len(region.Services))
		for _, svc := range region.Services {
			services = append(services, strings.ToLower(strings.TrimSpace(svc)))
		}
		result[region.Code] = services
	}

	return result, nil
}

// ApplyRegionalServices replaces the offerings of every region named in the
// parsed data. Display names such as "Amazon EC2" or "AWS Lambda" are
// normalized to offering keys; trailing words become variants, so
// "Amazon Redshift Serverless" yields a "redshift" offering with a
// "serverless" variant. Regions not named keep their existing data.
func (c *Catalog) ApplyRegionalServices(regional map[string][]string) {
	for region, services := range regional {
		offerings := make(map[string][]string)
		for _, svc := range services {
			key, variant := normalizeServiceName(svc)
			if key == "" {
				continue
			}
			if variant != "" {
				offerings[key] = append(offerings[key], variant)
			} else if _, ok := offerings[key]; !ok {
				offerings[key] = nil
			}
		}

		c.serviceMap[region] = offerings
		klog.V(2).InfoS("Applied regional services data",
			"region", region,
			"offerings", len(offerings))
	}
}

// normalizeServiceName maps a lowercased service display name to an offering
// key and an optional variant
func normalizeServiceName(name string) (string, string) {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "amazon ")
	name = strings.TrimPrefix(name, "aws ")

	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}

	return fields[0], strings.Join(fields[1:], " ")
}
