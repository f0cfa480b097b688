package analytics

import "time"

// AggregateQuery represents a generic database aggregation query
type AggregateQuery struct {
	Table      string                 // Table name
	GroupBy    []string               // GROUP BY columns
	Aggregates map[string]string      // Aggregate functions: {"total": "COUNT(*)", "avg_time": "AVG(processing_time)"}
	Filters    map[string]interface{} // WHERE conditions
	DateRange  *DateRange             // Date range filter
	OrderBy    []string               // ORDER BY clauses
	Limit      int                    // LIMIT (0 = no limit)
}

// DateRange represents a time period for filtering
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string // Date field to filter on (e.g., "timestamp")
}

// LastDays returns a DateRange covering the last n days up to now.
func LastDays(field string, days int) *DateRange {
	now := time.Now()
	return &DateRange{
		Start: now.AddDate(0, 0, -days),
		End:   now,
		Field: field,
	}
}
