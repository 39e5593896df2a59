package carbon

import "time"

// staticZoneIntensity holds approximate annual-average location-based
// intensities in gCO2eq/kWh, used only when static fallback is enabled
// and the API is unreachable.
var staticZoneIntensity = map[string]float64{
	"US-PJM":      390,
	"US-CAL-CISO": 240,
	"US-NW-PACW":  120,
	"CA-QC":       30,
	"MX":          420,
	"BR-CS":       100,
	"IE":          300,
	"GB":          220,
	"FR":          56,
	"DE":          380,
	"CH":          35,
	"SE":          25,
	"IT":          330,
	"ES":          170,
	"BH":          490,
	"AE":          430,
	"ZA":          700,
	"IN-WE":       700,
	"IN-SO":       650,
	"SG":          470,
	"AU-NSW":      550,
	"ID":          650,
	"JP":          480,
	"KR":          430,
	"JP-KN":       450,
	"HK":          580,
}

// staticSample builds an estimated sample from the static table
func staticSample(region, zone string) (*Sample, bool) {
	intensity, found := staticZoneIntensity[zone]
	if !found {
		return nil, false
	}

	return &Sample{
		Region:        region,
		Zone:          zone,
		LocationBased: intensity,
		MarketBased:   intensity * MarketDerivationFactor,
		MarketDerived: true,
		IsEstimated:   true,
		Timestamp:     time.Now(),
	}, true
}
