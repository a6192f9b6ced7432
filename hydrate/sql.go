package hydrate

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql used to fetch rows, allowing tests
// and instrumentation to substitute the connection. The engine composes no
// SQL itself; the caller's query must alias its columns to the
// "Alias.attribute" form, for example via schema.ColumnNames.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// QueryRows executes query against q and scans every result row into a flat
// Row keyed by the column names the query produced. []byte values are
// converted to string so identity values stay comparable across rows.
func QueryRows(ctx context.Context, q Querier, query string, args ...interface{}) ([]Row, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		record := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// HydrateQuery runs query through q and hydrates the scanned rows against
// root in one step.
func (h *Hydrator) HydrateQuery(ctx context.Context, q Querier, root *Node, query string, args ...interface{}) ([]Object, error) {
	flat, err := QueryRows(ctx, q, query, args...)
	if err != nil {
		return nil, err
	}
	return h.Hydrate(flat, root)
}
