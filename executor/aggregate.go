package executor

import (
	"fmt"

	"github.com/viant/weaver/dataset"
	"github.com/viant/weaver/wspec"
)

// aggregateMeasures computes every configured measure plus the display
// link-width column (added with Sum if it is not already one of measures)
// over the rows named by indices, ignoring rows where the column is absent.
func aggregateMeasures(rows []dataset.Row, indices []int, measures []wspec.MeasureSpec, linkWidthColumn string) (map[string]float64, error) {
	columns := make(map[string]wspec.Aggregation, len(measures)+1)
	for _, m := range measures {
		columns[m.Column] = m.Aggregation
	}
	if linkWidthColumn != "" {
		if _, ok := columns[linkWidthColumn]; !ok {
			columns[linkWidthColumn] = wspec.Sum
		}
	}

	data := make(map[string]float64, len(columns))
	for column, agg := range columns {
		v, err := aggregateColumn(rows, indices, column, agg)
		if err != nil {
			return nil, err
		}
		data[column] = v
	}
	return data, nil
}

func aggregateColumn(rows []dataset.Row, indices []int, column string, agg wspec.Aggregation) (float64, error) {
	var sum float64
	var count int
	for _, idx := range indices {
		v, ok := numericValue(rows[idx][column])
		if !ok {
			continue
		}
		sum += v
		count++
	}
	switch agg {
	case wspec.Sum:
		return sum, nil
	case wspec.Mean:
		if count == 0 {
			return 0, nil
		}
		return sum / float64(count), nil
	default:
		return 0, fmt.Errorf("executor: unknown aggregation %q for column %q", agg, column)
	}
}

func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
