package analytics

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Aggregator provides generic database aggregation helpers
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new aggregator
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Aggregate performs a generic aggregation query
func (a *Aggregator) Aggregate(query AggregateQuery) ([]map[string]interface{}, error) {
	selectParts := []string{}

	for _, col := range query.GroupBy {
		selectParts = append(selectParts, col)
	}
	for alias, agg := range query.Aggregates {
		selectParts = append(selectParts, fmt.Sprintf("%s AS %s", agg, alias))
	}

	db := a.db.Table(query.Table).Select(strings.Join(selectParts, ", "))

	for condition, value := range query.Filters {
		if strings.Contains(condition, "?") {
			db = db.Where(condition, value)
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", condition), value)
		}
	}

	if query.DateRange != nil {
		db = db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", query.DateRange.Field),
			query.DateRange.Start, query.DateRange.End)
	}

	if len(query.GroupBy) > 0 {
		db = db.Group(strings.Join(query.GroupBy, ", "))
	}
	for _, order := range query.OrderBy {
		db = db.Order(order)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var results []map[string]interface{}
	if err := db.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("aggregate query failed: %w", err)
	}

	return results, nil
}

// Count performs a COUNT query over a date range
func (a *Aggregator) Count(table string, dateRange *DateRange) (int64, error) {
	db := a.db.Table(table)
	if dateRange != nil {
		db = db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", dateRange.Field),
			dateRange.Start, dateRange.End)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

// CountDistinct performs a COUNT(DISTINCT column) query over a date range
func (a *Aggregator) CountDistinct(table, column string, dateRange *DateRange) (int64, error) {
	results, err := a.Aggregate(AggregateQuery{
		Table:      table,
		Aggregates: map[string]string{"total": fmt.Sprintf("COUNT(DISTINCT %s)", column)},
		DateRange:  dateRange,
	})
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return toInt64(results[0]["total"]), nil
}

// Average performs an AVG(column) query over a date range. NULL averages
// (no rows) come back as 0.
func (a *Aggregator) Average(table, column string, dateRange *DateRange) (float64, error) {
	results, err := a.Aggregate(AggregateQuery{
		Table:      table,
		Aggregates: map[string]string{"avg_value": fmt.Sprintf("AVG(%s)", column)},
		DateRange:  dateRange,
	})
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return toFloat64(results[0]["avg_value"]), nil
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
