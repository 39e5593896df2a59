package regions

// DefaultAWSServices lists offerings assumed present in every AWS region.
// Regions without an entry in AWSRegionalServices fall back to this set.
var DefaultAWSServices = map[string][]string{
	"ec2":    {"standard-instances"},
	"s3":     {"standard"},
	"rds":    {"mysql", "postgres"},
	"lambda": {"standard"},
	"ecs":    {"ec2"},
	"eks":    {"standard"},
}

// AWSRegionalServices maps AWS regions to their service offerings, based on
// AWS Regional Product Services data. GPU instance families are tracked as
// separate ec2-g5/ec2-g6 entries because their availability varies widely
// between regions.
var AWSRegionalServices = map[string]map[string][]string{
	"us-east-1": {
		"ec2":      {"all-instances"},
		"ec2-g6":   {"g6.xlarge", "g6.2xlarge", "g6.4xlarge", "g6.8xlarge", "g6.12xlarge", "g6.16xlarge"},
		"ec2-g5":   {"g5.xlarge", "g5.2xlarge", "g5.4xlarge", "g5.8xlarge", "g5.12xlarge", "g5.16xlarge"},
		"s3":       {"standard", "glacier", "deep-archive"},
		"rds":      {"mysql", "postgres", "aurora", "oracle", "sqlserver"},
		"lambda":   {"standard", "provisioned"},
		"redshift": {"dc2", "ra3", "serverless"},
		"eks":      {"standard", "fargate"},
		"ecs":      {"ec2", "fargate"},
	},
	"us-west-2": {
		"ec2":      {"all-instances"},
		"ec2-g6":   {"g6.xlarge", "g6.2xlarge", "g6.4xlarge", "g6.8xlarge", "g6.12xlarge"},
		"ec2-g5":   {"g5.xlarge", "g5.2xlarge", "g5.4xlarge", "g5.8xlarge", "g5.12xlarge", "g5.16xlarge"},
		"s3":       {"standard", "glacier", "deep-archive"},
		"rds":      {"mysql", "postgres", "aurora", "oracle", "sqlserver"},
		"lambda":   {"standard", "provisioned"},
		"redshift": {"dc2", "ra3", "serverless"},
		"eks":      {"standard", "fargate"},
		"ecs":      {"ec2", "fargate"},
	},
	"eu-west-1": {
		"ec2":      {"all-instances"},
		"ec2-g6":   {"g6.xlarge", "g6.2xlarge", "g6.4xlarge"},
		"ec2-g5":   {"g5.xlarge", "g5.2xlarge", "g5.4xlarge", "g5.8xlarge"},
		"s3":       {"standard", "glacier", "deep-archive"},
		"rds":      {"mysql", "postgres", "aurora", "oracle"},
		"lambda":   {"standard", "provisioned"},
		"redshift": {"dc2", "ra3", "serverless"},
		"eks":      {"standard", "fargate"},
		"ecs":      {"ec2", "fargate"},
	},
	"eu-central-1": {
		"ec2":      {"all-instances"},
		"ec2-g6":   {"g6.xlarge", "g6.2xlarge"},
		"ec2-g5":   {"g5.xlarge", "g5.2xlarge", "g5.4xlarge", "g5.8xlarge"},
		"s3":       {"standard", "glacier", "deep-archive"},
		"rds":      {"mysql", "postgres", "aurora", "oracle"},
		"lambda":   {"standard", "provisioned"},
		"redshift": {"dc2", "ra3", "serverless"},
		"eks":      {"standard", "fargate"},
		"ecs":      {"ec2", "fargate"},
	},
	"eu-north-1": {
		"ec2":      {"standard-instances"},
		"ec2-g5":   {"g5.xlarge", "g5.2xlarge", "g5.4xlarge"},
		"s3":       {"standard", "glacier"},
		"rds":      {"mysql", "postgres", "aurora"},
		"lambda":   {"standard"},
		"redshift": {"dc2", "ra3"},
		"eks":      {"standard"},
		"ecs":      {"ec2", "fargate"},
	},
	// Mumbai
	"ap-south-1": {
		"ec2":    {"standard-instances"},
		"ec2-g5": {"g5.xlarge", "g5.2xlarge"},
		"s3":     {"standard", "glacier"},
		"rds":    {"mysql", "postgres", "aurora"},
		"lambda": {"standard"},
		"eks":    {"standard"},
		"ecs":    {"ec2", "fargate"},
	},
	// Singapore carries G5 but no G6 capacity
	"ap-southeast-1": {
		"ec2":      {"standard-instances"},
		"ec2-g5":   {"g5.xlarge", "g5.2xlarge", "g5.4xlarge"},
		"s3":       {"standard", "glacier"},
		"rds":      {"mysql", "postgres", "aurora"},
		"lambda":   {"standard"},
		"redshift": {"dc2", "ra3"},
		"eks":      {"standard"},
		"ecs":      {"ec2", "fargate"},
	},
	"ap-northeast-1": {
		"ec2":      {"all-instances"},
		"ec2-g6":   {"g6.xlarge", "g6.2xlarge"},
		"ec2-g5":   {"g5.xlarge", "g5.2xlarge", "g5.4xlarge", "g5.8xlarge"},
		"s3":       {"standard", "glacier", "deep-archive"},
		"rds":      {"mysql", "postgres", "aurora", "oracle"},
		"lambda":   {"standard", "provisioned"},
		"redshift": {"dc2", "ra3"},
		"eks":      {"standard", "fargate"},
		"ecs":      {"ec2", "fargate"},
	},
	"ap-southeast-2": {
		"ec2":      {"standard-instances"},
		"ec2-g5":   {"g5.xlarge", "g5.2xlarge", "g5.4xlarge"},
		"s3":       {"standard", "glacier"},
		"rds":      {"mysql", "postgres", "aurora"},
		"lambda":   {"standard"},
		"redshift": {"dc2", "ra3"},
		"eks":      {"standard"},
		"ecs":      {"ec2", "fargate"},
	},
	"sa-east-1": {
		"ec2":    {"standard-instances"},
		"s3":     {"standard", "glacier"},
		"rds":    {"mysql", "postgres", "aurora"},
		"lambda": {"standard"},
		"eks":    {"standard"},
		"ecs":    {"ec2", "fargate"},
	},
}
