package regions

// AWSRegionInfo maps AWS regions to datacenter locations and grid information
var AWSRegionInfo = map[string]RegionInfo{
	// North America
	"us-east-1": {
		ElectricityMapsZone: "US-PJM",
		Latitude:            39.0438,
		Longitude:           -77.4874,
		TimeZone:            "America/New_York",
		Country:             "US",
		CloudProvider:       "aws",
		CloudRegion:         "us-east-1",
		Metadata: map[string]string{
			"state": "Virginia",
			"city":  "Ashburn",
		},
	},
	"us-east-2": {
		ElectricityMapsZone: "US-PJM",
		Latitude:            39.9612,
		Longitude:           -82.9988,
		TimeZone:            "America/New_York",
		Country:             "US",
		CloudProvider:       "aws",
		CloudRegion:         "us-east-2",
		Metadata: map[string]string{
			"state": "Ohio",
			"city":  "Columbus",
		},
	},
	"us-west-1": {
		ElectricityMapsZone: "US-CAL-CISO",
		Latitude:            37.7749,
		Longitude:           -122.4194,
		TimeZone:            "America/Los_Angeles",
		Country:             "US",
		CloudProvider:       "aws",
		CloudRegion:         "us-west-1",
		Metadata: map[string]string{
			"state": "California",
			"city":  "San Francisco",
		},
	},
	"us-west-2": {
		ElectricityMapsZone: "US-NW-PACW",
		Latitude:            45.5152,
		Longitude:           -122.6784,
		TimeZone:            "America/Los_Angeles",
		Country:             "US",
		CloudProvider:       "aws",
		CloudRegion:         "us-west-2",
		Metadata: map[string]string{
			"state":        "Oregon",
			"city":         "Portland",
			"renewables":   "high",
			"carbonStatus": "low",
		},
	},
	"ca-central-1": {
		ElectricityMapsZone: "CA-QC",
		Latitude:            45.5019,
		Longitude:           -73.5674,
		TimeZone:            "America/Toronto",
		Country:             "CA",
		CloudProvider:       "aws",
		CloudRegion:         "ca-central-1",
		Metadata: map[string]string{
			"province":     "Quebec",
			"city":         "Montreal",
			"renewables":   "high",
			"carbonStatus": "low",
		},
	},
	"mx-central-1": {
		ElectricityMapsZone: "MX",
		Latitude:            20.5888,
		Longitude:           -100.3899,
		TimeZone:            "America/Mexico_City",
		Country:             "MX",
		CloudProvider:       "aws",
		CloudRegion:         "mx-central-1",
		Metadata: map[string]string{
			"state": "Queretaro",
			"city":  "Queretaro",
		},
	},

	// South America
	"sa-east-1": {
		ElectricityMapsZone: "BR-CS",
		Latitude:            -23.5505,
		Longitude:           -46.6333,
		TimeZone:            "America/Sao_Paulo",
		Country:             "BR",
		CloudProvider:       "aws",
		CloudRegion:         "sa-east-1",
		Metadata: map[string]string{
			"city": "Sao Paulo",
		},
	},

	// Europe
	"eu-west-1": {
		ElectricityMapsZone: "IE",
		Latitude:            53.3498,
		Longitude:           -6.2603,
		TimeZone:            "Europe/Dublin",
		Country:             "IE",
		CloudProvider:       "aws",
		CloudRegion:         "eu-west-1",
		Metadata: map[string]string{
			"city": "Dublin",
		},
	},
	"eu-west-2": {
		ElectricityMapsZone: "GB",
		Latitude:            51.5074,
		Longitude:           -0.1278,
		TimeZone:            "Europe/London",
		Country:             "GB",
		CloudProvider:       "aws",
		CloudRegion:         "eu-west-2",
		Metadata: map[string]string{
			"city": "London",
		},
	},
	"eu-west-3": {
		ElectricityMapsZone: "FR",
		Latitude:            48.8566,
		Longitude:           2.3522,
		TimeZone:            "Europe/Paris",
		Country:             "FR",
		CloudProvider:       "aws",
		CloudRegion:         "eu-west-3",
		Metadata: map[string]string{
			"city": "Paris",
		},
	},
	"eu-central-1": {
		ElectricityMapsZone: "DE",
		Latitude:            50.1109,
		Longitude:           8.6821,
		TimeZone:            "Europe/Berlin",
		Country:             "DE",
		CloudProvider:       "aws",
		CloudRegion:         "eu-central-1",
		Metadata: map[string]string{
			"city": "Frankfurt",
		},
	},
	"eu-central-2": {
		ElectricityMapsZone: "CH",
		Latitude:            47.3769,
		Longitude:           8.5417,
		TimeZone:            "Europe/Zurich",
		Country:             "CH",
		CloudProvider:       "aws",
		CloudRegion:         "eu-central-2",
		Metadata: map[string]string{
			"city": "Zurich",
		},
	},
	"eu-north-1": {
		ElectricityMapsZone: "SE",
		Latitude:            59.3293,
		Longitude:           18.0686,
		TimeZone:            "Europe/Stockholm",
		Country:             "SE",
		CloudProvider:       "aws",
		CloudRegion:         "eu-north-1",
		Metadata: map[string]string{
			"city":         "Stockholm",
			"renewables":   "high",
			"carbonStatus": "low",
		},
	},
	"eu-south-1": {
		ElectricityMapsZone: "IT",
		Latitude:            45.4642,
		Longitude:           9.19,
		TimeZone:            "Europe/Rome",
		Country:             "IT",
		CloudProvider:       "aws",
		CloudRegion:         "eu-south-1",
		Metadata: map[string]string{
			"city": "Milan",
		},
	},
	"eu-south-2": {
		ElectricityMapsZone: "ES",
		Latitude:            41.6488,
		Longitude:           -0.8891,
		TimeZone:            "Europe/Madrid",
		Country:             "ES",
		CloudProvider:       "aws",
		CloudRegion:         "eu-south-2",
		Metadata: map[string]string{
			"city": "Zaragoza",
		},
	},

	// Middle East and Africa
	"me-south-1": {
		ElectricityMapsZone: "BH",
		Latitude:            26.0667,
		Longitude:           50.5577,
		TimeZone:            "Asia/Bahrain",
		Country:             "BH",
		CloudProvider:       "aws",
		CloudRegion:         "me-south-1",
		Metadata: map[string]string{
			"city": "Manama",
		},
	},
	"me-central-1": {
		ElectricityMapsZone: "AE",
		Latitude:            25.2048,
		Longitude:           55.2708,
		TimeZone:            "Asia/Dubai",
		Country:             "AE",
		CloudProvider:       "aws",
		CloudRegion:         "me-central-1",
		Metadata: map[string]string{
			"city": "Dubai",
		},
	},
	"af-south-1": {
		ElectricityMapsZone: "ZA",
		Latitude:            -33.9249,
		Longitude:           18.4241,
		TimeZone:            "Africa/Johannesburg",
		Country:             "ZA",
		CloudProvider:       "aws",
		CloudRegion:         "af-south-1",
		Metadata: map[string]string{
			"city": "Cape Town",
		},
	},

	// Asia Pacific
	"ap-south-1": {
		ElectricityMapsZone: "IN-WE",
		Latitude:            19.076,
		Longitude:           72.8777,
		TimeZone:            "Asia/Kolkata",
		Country:             "IN",
		CloudProvider:       "aws",
		CloudRegion:         "ap-south-1",
		Metadata: map[string]string{
			"city": "Mumbai",
		},
	},
	"ap-south-2": {
		ElectricityMapsZone: "IN-SO",
		Latitude:            17.385,
		Longitude:           78.4867,
		TimeZone:            "Asia/Kolkata",
		Country:             "IN",
		CloudProvider:       "aws",
		CloudRegion:         "ap-south-2",
		Metadata: map[string]string{
			"city": "Hyderabad",
		},
	},
	"ap-southeast-1": {
		ElectricityMapsZone: "SG",
		Latitude:            1.3521,
		Longitude:           103.8198,
		TimeZone:            "Asia/Singapore",
		Country:             "SG",
		CloudProvider:       "aws",
		CloudRegion:         "ap-southeast-1",
		Metadata: map[string]string{
			"city": "Singapore",
		},
	},
	"ap-southeast-2": {
		ElectricityMapsZone: "AU-NSW",
		Latitude:            -33.8688,
		Longitude:           151.2093,
		TimeZone:            "Australia/Sydney",
		Country:             "AU",
		CloudProvider:       "aws",
		CloudRegion:         "ap-southeast-2",
		Metadata: map[string]string{
			"city":  "Sydney",
			"state": "New South Wales",
		},
	},
	"ap-southeast-3": {
		ElectricityMapsZone: "ID",
		Latitude:            -6.2088,
		Longitude:           106.8456,
		TimeZone:            "Asia/Jakarta",
		Country:             "ID",
		CloudProvider:       "aws",
		CloudRegion:         "ap-southeast-3",
		Metadata: map[string]string{
			"city": "Jakarta",
		},
	},
	"ap-northeast-1": {
		ElectricityMapsZone: "JP",
		Latitude:            35.6762,
		Longitude:           139.6503,
		TimeZone:            "Asia/Tokyo",
		Country:             "JP",
		CloudProvider:       "aws",
		CloudRegion:         "ap-northeast-1",
		Metadata: map[string]string{
			"city": "Tokyo",
		},
	},
	"ap-northeast-2": {
		ElectricityMapsZone: "KR",
		Latitude:            37.5665,
		Longitude:           126.978,
		TimeZone:            "Asia/Seoul",
		Country:             "KR",
		CloudProvider:       "aws",
		CloudRegion:         "ap-northeast-2",
		Metadata: map[string]string{
			"city": "Seoul",
		},
	},
	"ap-northeast-3": {
		ElectricityMapsZone: "JP-KN",
		Latitude:            34.6937,
		Longitude:           135.5023,
		TimeZone:            "Asia/Tokyo",
		Country:             "JP",
		CloudProvider:       "aws",
		CloudRegion:         "ap-northeast-3",
		Metadata: map[string]string{
			"city": "Osaka",
		},
	},
	"ap-east-1": {
		ElectricityMapsZone: "HK",
		Latitude:            22.3193,
		Longitude:           114.1694,
		TimeZone:            "Asia/Hong_Kong",
		Country:             "HK",
		CloudProvider:       "aws",
		CloudRegion:         "ap-east-1",
		Metadata: map[string]string{
			"city": "Hong Kong",
		},
	},
}
