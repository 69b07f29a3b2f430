package querybuilder

import (
	"regexp"
)

var (
	aggregationPattern = regexp.MustCompile(`(?i)\b(COUNT|SUM|AVG|MIN|MAX)\s*\(`)
	timeBucketPattern  = regexp.MustCompile(`(?i)\bDATE_TRUNC\s*\(`)
)

// classifyQuery derives the metadata descriptor from the assembled clause
// texts. Time series wins over plain aggregation.
func classifyQuery(selectExprs, groupExprs []string) QueryMetadata {
	meta := QueryMetadata{QueryType: QueryTypeSelect}

	for _, expr := range selectExprs {
		if aggregationPattern.MatchString(expr) {
			meta.HasAggregation = true
		}
		if timeBucketPattern.MatchString(expr) {
			meta.IsTimeSeries = true
		}
	}
	for _, expr := range groupExprs {
		if timeBucketPattern.MatchString(expr) {
			meta.IsTimeSeries = true
		}
	}

	switch {
	case meta.IsTimeSeries:
		meta.QueryType = QueryTypeTimeSeries
	case meta.HasAggregation:
		meta.QueryType = QueryTypeAggregate
	}

	return meta
}
