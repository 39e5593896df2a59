// Package ccft parses and analyzes AWS Customer Carbon Footprint Tool
// report exports.
package ccft

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names of the CCFT export format
const (
	ColumnUsageMonth   = "usage_month"
	ColumnLocation     = "location"
	ColumnProductCode  = "product_code"
	ColumnMBMEmissions = "total_mbm_emissions_value"
	ColumnLBMEmissions = "total_lbm_emissions_value"
)

var requiredColumns = []string{
	ColumnUsageMonth,
	ColumnLocation,
	ColumnProductCode,
	ColumnMBMEmissions,
	ColumnLBMEmissions,
}

// Record is one row of a CCFT report. Emission values are in MTCO2e.
type Record struct {
	UsageMonth   string  `json:"usage_month"`
	Location     string  `json:"location"`
	ProductCode  string  `json:"product_code"`
	MBMEmissions float64 `json:"total_mbm_emissions_value"`
	LBMEmissions float64 `json:"total_lbm_emissions_value"`
}

// Report is a parsed CCFT report
type Report struct {
	Records []Record
	Columns []string
}

// ParseCSV reads a CCFT CSV export. The header row must carry all required
// columns; extra columns are preserved in Columns but otherwise ignored.
func ParseCSV(r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %v", err)
	}

	columnIndex := make(map[string]int)
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		columnIndex[name] = i
		columns = append(columns, name)
	}

	var missing []string
	for _, column := range requiredColumns {
		if _, ok := columnIndex[column]; !ok {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	report := &Report{Columns: columns}
	row := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %v", row, err)
		}
		row++

		mbm, err := parseEmissionValue(fields[columnIndex[ColumnMBMEmissions]])
		if err != nil {
			return nil, fmt.Errorf("invalid %s on row %d: %v", ColumnMBMEmissions, row, err)
		}
		lbm, err := parseEmissionValue(fields[columnIndex[ColumnLBMEmissions]])
		if err != nil {
			return nil, fmt.Errorf("invalid %s on row %d: %v", ColumnLBMEmissions, row, err)
		}

		report.Records = append(report.Records, Record{
			UsageMonth:   strings.TrimSpace(fields[columnIndex[ColumnUsageMonth]]),
			Location:     strings.TrimSpace(fields[columnIndex[ColumnLocation]]),
			ProductCode:  strings.TrimSpace(fields[columnIndex[ColumnProductCode]]),
			MBMEmissions: mbm,
			LBMEmissions: lbm,
		})
	}

	if len(report.Records) == 0 {
		return nil, fmt.Errorf("report contains no records")
	}

	return report, nil
}

// ParseJSON reads a CCFT JSON export, accepting either a top-level array of
// records or an object wrapping one under "records".
func ParseJSON(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON report: %v", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		var wrapper struct {
			Records []Record `json:"records"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode JSON report: %v", err)
		}
		records = wrapper.Records
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("report contains no records")
	}

	return &Report{
		Records: records,
		Columns: append([]string(nil), requiredColumns...),
	}, nil
}

// parseEmissionValue parses a single emissions cell, treating an empty cell
// as zero
func parseEmissionValue(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return value, nil
}
