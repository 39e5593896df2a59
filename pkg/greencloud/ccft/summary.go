package ccft

import (
	"fmt"
	"sort"
	"strings"
)

// GroupTotal is the market-based emissions aggregate for one grouping key
type GroupTotal struct {
	Key       string  `json:"key"`
	Emissions float64 `json:"emissions"`
}

// Summary aggregates a report for display and as model context.
// Emission totals are in MTCO2e.
type Summary struct {
	TotalRecords     int          `json:"totalRecords"`
	DateFrom         string       `json:"dateFrom"`
	DateTo           string       `json:"dateTo"`
	TotalLBM         float64      `json:"totalLbmEmissions"`
	TotalMBM         float64      `json:"totalMbmEmissions"`
	ReductionPercent float64      `json:"reductionPercent"`
	TopService       string       `json:"topService"`
	TopRegion        string       `json:"topRegion"`
	ServiceEmissions []GroupTotal `json:"serviceEmissions"`
	RegionEmissions  []GroupTotal `json:"regionEmissions"`
	MonthlyEmissions []GroupTotal `json:"monthlyEmissions"`
	Columns          []string     `json:"columns"`
}

// Summarize computes the aggregate view of a report
func Summarize(report *Report) *Summary {
	summary := &Summary{
		TotalRecords: len(report.Records),
		Columns:      report.Columns,
	}

	for _, record := range report.Records {
		summary.TotalLBM += record.LBMEmissions
		summary.TotalMBM += record.MBMEmissions

		if record.UsageMonth == "" {
			continue
		}
		if summary.DateFrom == "" || record.UsageMonth < summary.DateFrom {
			summary.DateFrom = record.UsageMonth
		}
		if summary.DateTo == "" || record.UsageMonth > summary.DateTo {
			summary.DateTo = record.UsageMonth
		}
	}

	// Renewable purchases show up as market-based totals below the
	// location-based grid average
	if summary.TotalLBM > 0 {
		summary.ReductionPercent = (summary.TotalLBM - summary.TotalMBM) / summary.TotalLBM * 100
	}

	summary.ServiceEmissions = sortedByEmissions(sumBy(report.Records, func(r Record) string { return r.ProductCode }))
	summary.RegionEmissions = sortedByEmissions(sumBy(report.Records, func(r Record) string { return r.Location }))
	summary.MonthlyEmissions = sortedByKey(sumBy(report.Records, func(r Record) string { return r.UsageMonth }))

	if len(summary.ServiceEmissions) > 0 {
		summary.TopService = summary.ServiceEmissions[0].Key
	}
	if len(summary.RegionEmissions) > 0 {
		summary.TopRegion = summary.RegionEmissions[0].Key
	}

	return summary
}

// Text renders the summary block used as model context
func (s *Summary) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "CCFT Data Summary:\n")
	fmt.Fprintf(&b, "- Total records: %d\n", s.TotalRecords)
	fmt.Fprintf(&b, "- Columns: %s\n", strings.Join(s.Columns, ", "))
	fmt.Fprintf(&b, "- Date range: %s to %s\n", s.DateFrom, s.DateTo)
	fmt.Fprintf(&b, "\nTop Regions: %s\n", strings.Join(topKeys(s.RegionEmissions, 5), ", "))
	fmt.Fprintf(&b, "Top Services: %s\n", strings.Join(topKeys(s.ServiceEmissions, 5), ", "))
	fmt.Fprintf(&b, "Total MBM emissions: %.2f MTCO2e\n", s.TotalMBM)
	fmt.Fprintf(&b, "Total LBM emissions: %.2f MTCO2e", s.TotalLBM)

	return b.String()
}

func sumBy(records []Record, key func(Record) string) map[string]float64 {
	totals := make(map[string]float64)
	for _, record := range records {
		totals[key(record)] += record.MBMEmissions
	}
	return totals
}

func sortedByEmissions(totals map[string]float64) []GroupTotal {
	groups := toGroups(totals)
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Emissions != groups[j].Emissions {
			return groups[i].Emissions > groups[j].Emissions
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func sortedByKey(totals map[string]float64) []GroupTotal {
	groups := toGroups(totals)
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

func toGroups(totals map[string]float64) []GroupTotal {
	groups := make([]GroupTotal, 0, len(totals))
	for key, emissions := range totals {
		groups = append(groups, GroupTotal{Key: key, Emissions: emissions})
	}
	return groups
}

func topKeys(groups []GroupTotal, n int) []string {
	if len(groups) < n {
		n = len(groups)
	}
	keys := make([]string, 0, n)
	for _, group := range groups[:n] {
		keys = append(keys, group.Key)
	}
	return keys
}
