package hydrate

import (
	"fmt"

	"github.com/dphaener/hydrate/schema"
)

// groupByIdentity partitions rows into one group per distinct value of the
// alias-qualified primary-key column, preserving first-seen order. Only the
// first row is checked for the identity column's presence; row homogeneity
// is enforced upstream. Rows with an empty identity value are dropped, which
// absorbs outer-join rows that matched no entity.
func groupByIdentity(rows []Row, model *schema.Model, alias string) ([][]Row, error) {
	if alias == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingAlias, model.Name)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	idColumn := alias + "." + model.PrimaryKey
	if _, ok := rows[0][idColumn]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrPrimaryKeyColumnNotFound, idColumn)
	}
	return groupByColumn(rows, idColumn), nil
}

// groupByColumn buckets rows by the value of one column in first-seen order,
// dropping rows whose value is empty.
func groupByColumn(rows []Row, column string) [][]Row {
	indexes := make(map[interface{}]int)
	var groups [][]Row
	for _, row := range rows {
		v := row[column]
		if isEmptyValue(v) {
			continue
		}
		idx, seen := indexes[v]
		if !seen {
			idx = len(groups)
			indexes[v] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], row)
	}
	return groups
}

func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
